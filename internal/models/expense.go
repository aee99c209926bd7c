package models

import (
	"time"

	"spendwise/internal/money"
)

// Expense represents a single recorded expense. Amounts are stored in
// integer cents; Date is a calendar date, not a timestamp.
type Expense struct {
	Base
	UserID      uint        `gorm:"not null;index:ix_expenses_user_date;index:ix_expenses_user_category" json:"user_id"`
	CategoryID  uint        `gorm:"not null;index:ix_expenses_user_category" json:"category_id"`
	Amount      money.Cents `gorm:"not null" json:"amount_cents"`
	Description string      `gorm:"size:255" json:"description"`
	Date        time.Time   `gorm:"type:date;not null;index:ix_expenses_user_date" json:"date"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
