package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneymap/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a transaction dated now in the given category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, category string, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, category, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction with an explicit date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Amount:      decimal.NewFromFloat(amount),
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Category:    category,
		Date:        date,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestBudget creates a budget for the given category, month, and year.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, amount float64, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		CategoryName: category,
		Amount:       decimal.NewFromFloat(amount),
		Month:        month,
		Year:         year,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
