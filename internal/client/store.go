package client

import (
	"context"
	"sync"
)

// Store holds the session state and runs the side-effecting commands around
// the pure Reduce transition. Mutating commands write remotely first, then
// re-fetch the transaction collection under the active filters; budgets are
// patched locally on upsert for immediate feedback. Failed calls record the
// error and stop the loading indicator; nothing is retried or de-duplicated.
type Store struct {
	mu    sync.Mutex
	state State
	api   *API
}

// NewStore creates a Store backed by the given API client.
func NewStore(api *API) *Store {
	return &Store{state: NewState(), api: api}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

func (s *Store) filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Filters
}

// Init performs the initial load: transactions and budgets, unfiltered.
func (s *Store) Init(ctx context.Context) error {
	if err := s.FetchTransactions(ctx); err != nil {
		return err
	}
	return s.FetchBudgets(ctx)
}

// FetchTransactions replaces the held transactions with the server's view
// under the active filters.
func (s *Store) FetchTransactions(ctx context.Context) error {
	s.dispatch(SetLoading{Loading: true})

	transactions, err := s.api.ListTransactions(ctx, s.filters())
	if err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	s.dispatch(SetTransactions{Transactions: transactions})
	return nil
}

// FetchBudgets replaces the held budgets with the server's view.
func (s *Store) FetchBudgets(ctx context.Context) error {
	s.dispatch(SetLoading{Loading: true})

	budgets, err := s.api.ListBudgets(ctx, Filters{})
	if err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	s.dispatch(SetBudgets{Budgets: budgets})
	return nil
}

// AddTransaction records a transaction remotely, then re-fetches the
// collection under the active filters.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) error {
	s.dispatch(SetLoading{Loading: true})

	if _, err := s.api.CreateTransaction(ctx, in); err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	return s.FetchTransactions(ctx)
}

// UpdateTransaction replaces a transaction remotely, then re-fetches.
func (s *Store) UpdateTransaction(ctx context.Context, id string, in TransactionInput) error {
	s.dispatch(SetLoading{Loading: true})

	if _, err := s.api.UpdateTransaction(ctx, id, in); err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	return s.FetchTransactions(ctx)
}

// DeleteTransaction removes a transaction remotely, then re-fetches.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.dispatch(SetLoading{Loading: true})

	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	return s.FetchTransactions(ctx)
}

// UpsertBudget writes a budget remotely and patches the held collection with
// the stored record.
func (s *Store) UpsertBudget(ctx context.Context, in BudgetInput) error {
	s.dispatch(SetLoading{Loading: true})

	budget, err := s.api.UpsertBudget(ctx, in)
	if err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	s.dispatch(PatchBudget{Budget: *budget})
	return nil
}

// DeleteBudget removes a budget remotely, then re-fetches the budgets.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.dispatch(SetLoading{Loading: true})

	if err := s.api.DeleteBudget(ctx, id); err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return err
	}

	return s.FetchBudgets(ctx)
}

// SetFilters replaces the active filters and immediately re-fetches
// transactions under them.
func (s *Store) SetFilters(ctx context.Context, f Filters) error {
	s.dispatch(SetFilters{Filters: f})
	return s.FetchTransactions(ctx)
}
