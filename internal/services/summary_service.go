package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
)

var (
	hundredPercent = decimal.NewFromInt(100)
	eightyPercent  = decimal.NewFromInt(80)
)

// summaryService computes dashboard aggregates over transactions and budgets.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetSummary aggregates the current calendar month: totals, per-category
// breakdown, the five most recent transactions overall, budget-vs-actual
// rows, and budget insights.
func (s *summaryService) GetSummary() (*Summary, error) {
	now := time.Now()
	start, end := monthWindow(now)

	var transactions []models.Transaction
	if err := s.db.Where("date >= ? AND date <= ?", start, end).
		Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Where("month = ? AND year = ?", int(now.Month())-1, now.Year()).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalExpenses := decimal.Zero
	categoryTotals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		totalExpenses = totalExpenses.Add(t.Amount)
		categoryTotals[t.Category] = categoryTotals[t.Category].Add(t.Amount)
	}

	totalBudget := decimal.Zero
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.Amount)
	}

	// Recent transactions are deliberately unscoped: the dashboard shows the
	// latest five regardless of month.
	var recent []models.Transaction
	if err := s.db.Order("date DESC, created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		actual := categoryTotals[b.CategoryName]
		comparisons = append(comparisons, BudgetComparison{
			Category:  b.CategoryName,
			Budget:    b.Amount,
			Actual:    actual,
			Remaining: b.Amount.Sub(actual),
		})
	}

	return &Summary{
		TotalExpenses:      totalExpenses,
		TotalBudget:        totalBudget,
		Remaining:          totalBudget.Sub(totalExpenses),
		TransactionCount:   len(transactions),
		CategoryTotals:     categoryTotals,
		RecentTransactions: recent,
		BudgetVsActual:     comparisons,
		BudgetInsights:     ComputeInsights(budgets, categoryTotals),
		Month:              int(now.Month()) - 1,
		Year:               now.Year(),
	}, nil
}

// ComputeInsights evaluates each budget against actual spending. Above 100%
// it emits an overspent insight with the overage; below 80% a within-budget
// one. The 80–100% band emits nothing; both cut points are part of the
// contract and must not be adjusted.
func ComputeInsights(budgets []models.Budget, categoryTotals map[string]decimal.Decimal) []BudgetInsight {
	insights := make([]BudgetInsight, 0, len(budgets))

	for _, b := range budgets {
		actual := categoryTotals[b.CategoryName]

		percentage := decimal.Zero
		if b.Amount.IsPositive() {
			percentage = actual.Div(b.Amount).Mul(hundredPercent)
		}

		switch {
		case percentage.GreaterThan(hundredPercent):
			over := actual.Sub(b.Amount)
			insights = append(insights, BudgetInsight{
				Type:     "overspent",
				Category: b.CategoryName,
				Amount:   &over,
				Message:  fmt.Sprintf("You overspent in %s by %s", b.CategoryName, over),
			})
		case percentage.LessThan(eightyPercent):
			insights = append(insights, BudgetInsight{
				Type:     "within_budget",
				Category: b.CategoryName,
				Message:  fmt.Sprintf("You're within budget in %s", b.CategoryName),
			})
		}
	}

	return insights
}

// GetMonthlyTrend returns totals for the trailing six calendar months,
// oldest first. Months with no activity still produce an entry.
func (s *summaryService) GetMonthlyTrend() ([]MonthlySummary, error) {
	now := time.Now()
	series := make([]MonthlySummary, 0, 6)

	for i := 5; i >= 0; i-- {
		// time.Date normalizes out-of-range months, handling year rollover.
		anchor := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		start, end := monthWindow(anchor)

		var transactions []models.Transaction
		if err := s.db.Where("date >= ? AND date <= ?", start, end).Find(&transactions).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		total := decimal.Zero
		for _, t := range transactions {
			total = total.Add(t.Amount)
		}

		series = append(series, MonthlySummary{
			Month:            anchor.Month().String(),
			Year:             anchor.Year(),
			Total:            total,
			TransactionCount: len(transactions),
		})
	}

	return series, nil
}
