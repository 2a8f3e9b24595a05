package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial event owned by exactly one user.
// Category is a denormalized (name, type) label, not a foreign key:
// referential integrity to the categories table is by convention only,
// maintained by the retag cascade on category rename/delete.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null;index" json:"type"`
	Description string          `json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    string          `gorm:"index" json:"category"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
}
