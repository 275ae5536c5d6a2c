package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateTransaction checks the mutable transaction fields and returns the
// trimmed description.
func validateTransaction(amount decimal.Decimal, description, category string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", apperrors.ErrMissingFields
	}
	if amount.IsNegative() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be non-negative")
	}
	if !models.ValidCategory(category) {
		return "", apperrors.ErrUnknownCategory
	}
	return description, nil
}

// CreateTransaction records a new expense. A zero date defaults to now.
func (s *transactionService) CreateTransaction(amount decimal.Decimal, description, category string, date time.Time) (*models.Transaction, error) {
	// A zero amount is indistinguishable from an absent one on the wire.
	if amount.IsZero() {
		return nil, apperrors.ErrMissingFields
	}
	description, err := validateTransaction(amount, description, category)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *transactionService) GetTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{})
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// UpdateTransaction replaces all mutable fields of an existing transaction.
func (s *transactionService) UpdateTransaction(id string, amount decimal.Decimal, description, category string, date time.Time) (*models.Transaction, error) {
	description, err := validateTransaction(amount, description, category)
	if err != nil {
		return nil, err
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"amount":      amount,
		"description": description,
		"category":    category,
		"date":        date,
	}
	if err := s.db.Model(&transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction permanently.
func (s *transactionService) DeleteTransaction(id string) error {
	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExportCSV renders the filtered transactions as a CSV document.
func (s *transactionService) ExportCSV(filter TransactionFilter) (string, error) {
	transactions, err := s.GetTransactions(filter)
	if err != nil {
		return "", err
	}
	return RenderTransactionsCSV(transactions), nil
}
