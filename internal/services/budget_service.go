package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// UpsertBudget creates a budget for (categoryName, month, year) or replaces
// the amount of the existing one. Concurrent writes to the same triple
// resolve last-write-wins.
func (s *budgetService) UpsertBudget(categoryName string, amount decimal.Decimal, month, year int) (*models.Budget, error) {
	if !models.ValidCategory(categoryName) {
		return nil, apperrors.ErrUnknownCategory
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be non-negative")
	}
	if month < 0 || month > 11 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 0 and 11")
	}
	if year < 2020 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Year must be 2020 or later")
	}

	var budget models.Budget
	err := s.db.Where("category_name = ? AND month = ? AND year = ?", categoryName, month, year).First(&budget).Error
	switch {
	case err == nil:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			CategoryName: categoryName,
			Amount:       amount,
			Month:        month,
			Year:         year,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetBudgets lists budgets. When both date bounds are present the range is
// expanded to every (year, month) pair it touches; otherwise all budgets are
// returned.
func (s *budgetService) GetBudgets(startDate, endDate *time.Time) ([]models.Budget, error) {
	query := s.db.Model(&models.Budget{})

	if startDate != nil && endDate != nil {
		pairs := MonthsInRange(*startDate, *endDate)
		if len(pairs) == 0 {
			return []models.Budget{}, nil
		}
		cond := s.db.Where("year = ? AND month = ?", pairs[0].Year, pairs[0].Month)
		for _, p := range pairs[1:] {
			cond = cond.Or("year = ? AND month = ?", p.Year, p.Month)
		}
		query = query.Where(cond)
	}

	var budgets []models.Budget
	if err := query.Order("year, month, category_name").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetsForMonth returns the budgets of one calendar month.
func (s *budgetService) GetBudgetsForMonth(year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("year = ? AND month = ?", year, month).Order("category_name").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// DeleteBudget removes a budget permanently.
func (s *budgetService) DeleteBudget(id string) error {
	var budget models.Budget
	if err := s.db.First(&budget, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
