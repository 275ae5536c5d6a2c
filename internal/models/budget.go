package models

import "github.com/shopspring/decimal"

// Budget is the spending cap for a category in a specific calendar month.
// Months are zero-based (0 = January), matching the wire format.
type Budget struct {
	Base
	CategoryName string          `gorm:"not null;uniqueIndex:idx_budget_category_month_year" json:"categoryName"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Month        int             `gorm:"not null;uniqueIndex:idx_budget_category_month_year" json:"month"`
	Year         int             `gorm:"not null;uniqueIndex:idx_budget_category_month_year" json:"year"`
}
