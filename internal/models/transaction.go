package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single recorded expense.
type Transaction struct {
	Base
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null;index" json:"category"`
	Date        time.Time       `gorm:"not null;index:,sort:desc" json:"date"`
}
