package services

import (
	"time"

	"github.com/shopspring/decimal"

	"moneymap/internal/models"
)

// TransactionFilter holds optional filter parameters for listing transactions.
// A nil field leaves that bound open; both date bounds are inclusive.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(amount decimal.Decimal, description, category string, date time.Time) (*models.Transaction, error)
	GetTransactions(filter TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(id string, amount decimal.Decimal, description, category string, date time.Time) (*models.Transaction, error)
	DeleteTransaction(id string) error
	ExportCSV(filter TransactionFilter) (string, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	UpsertBudget(categoryName string, amount decimal.Decimal, month, year int) (*models.Budget, error)
	GetBudgets(startDate, endDate *time.Time) ([]models.Budget, error)
	GetBudgetsForMonth(year, month int) ([]models.Budget, error)
	DeleteBudget(id string) error
}

// BudgetComparison is one budget-vs-actual row of the dashboard summary.
type BudgetComparison struct {
	Category  string          `json:"category"`
	Budget    decimal.Decimal `json:"budget"`
	Actual    decimal.Decimal `json:"actual"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetInsight flags a budget as overspent or comfortably within budget.
// Amount is the overage and is only set for overspent insights.
type BudgetInsight struct {
	Type     string           `json:"type"`
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Message  string           `json:"message"`
}

// Summary is the current-month dashboard aggregate.
type Summary struct {
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	TotalBudget        decimal.Decimal            `json:"totalBudget"`
	Remaining          decimal.Decimal            `json:"remaining"`
	TransactionCount   int                        `json:"transactionCount"`
	CategoryTotals     map[string]decimal.Decimal `json:"categoryTotals"`
	RecentTransactions []models.Transaction       `json:"recentTransactions"`
	BudgetVsActual     []BudgetComparison         `json:"budgetVsActual"`
	BudgetInsights     []BudgetInsight            `json:"budgetInsights"`
	Month              int                        `json:"month"`
	Year               int                        `json:"year"`
}

// MonthlySummary is one entry of the trailing 6-month series.
type MonthlySummary struct {
	Month            string          `json:"month"`
	Year             int             `json:"year"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transactionCount"`
}

// SummaryServicer defines the contract for dashboard aggregation.
type SummaryServicer interface {
	GetSummary() (*Summary, error)
	GetMonthlyTrend() ([]MonthlySummary, error)
}
