// Package client is an embeddable state store for MoneyMap front ends.
// State transitions are a pure function over a typed action set; all
// side-effecting API calls live on Store and are dispatched as commands.
package client

import "moneymap/internal/models"

// Filters is the active transaction filter. Empty fields leave that
// dimension unfiltered.
type Filters struct {
	StartDate string
	EndDate   string
	Category  string
}

// State is the session's view of the server data.
type State struct {
	Transactions []models.Transaction
	Budgets      []models.Budget
	Categories   []models.Category
	Loading      bool
	Err          string
	Filters      Filters
}

// NewState returns the initial state, with categories seeded from the fixed
// registry.
func NewState() State {
	return State{Categories: models.Categories()}
}

// Action is a state transition input. The concrete types below form the
// complete action set.
type Action interface{ isAction() }

// SetLoading toggles the in-flight indicator.
type SetLoading struct{ Loading bool }

// SetError records a failed call and stops the in-flight indicator.
type SetError struct{ Message string }

// SetTransactions replaces the held transaction collection.
type SetTransactions struct{ Transactions []models.Transaction }

// SetBudgets replaces the held budget collection.
type SetBudgets struct{ Budgets []models.Budget }

// PatchBudget replaces or appends one budget, matched on its
// (categoryName, month, year) key, for immediate feedback after an upsert.
type PatchBudget struct{ Budget models.Budget }

// SetFilters replaces the active filters.
type SetFilters struct{ Filters Filters }

func (SetLoading) isAction()      {}
func (SetError) isAction()        {}
func (SetTransactions) isAction() {}
func (SetBudgets) isAction()      {}
func (PatchBudget) isAction()     {}
func (SetFilters) isAction()      {}

// Reduce applies an action to a state and returns the next state. It is pure:
// no I/O, no mutation of the input.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading
	case SetError:
		s.Err = a.Message
		s.Loading = false
	case SetTransactions:
		s.Transactions = a.Transactions
		s.Loading = false
	case SetBudgets:
		s.Budgets = a.Budgets
		s.Loading = false
	case PatchBudget:
		s.Budgets = patchBudget(s.Budgets, a.Budget)
		s.Loading = false
	case SetFilters:
		s.Filters = a.Filters
	}
	return s
}

func patchBudget(budgets []models.Budget, b models.Budget) []models.Budget {
	out := make([]models.Budget, len(budgets))
	copy(out, budgets)
	for i, existing := range out {
		if existing.CategoryName == b.CategoryName && existing.Month == b.Month && existing.Year == b.Year {
			out[i] = b
			return out
		}
	}
	return append(out, b)
}
