package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction types
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction model. Owned exclusively by the creating user; reads, updates
// and deletes are always scoped to id+owner. Date carries no time component.
type Transaction struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index:idx_transactions_user_date,priority:1;index:idx_transactions_user_category,priority:1;index:idx_transactions_user_type,priority:1"`
	CategoryID  uint           `json:"category_id" gorm:"not null;index:idx_transactions_user_category,priority:2"`
	Amount      float64        `json:"amount" gorm:"type:numeric(12,2);not null"`
	Type        string         `json:"type" gorm:"not null;index:idx_transactions_user_type,priority:2"` // income/expense
	Description *string        `json:"description" gorm:"size:255"`
	Date        datatypes.Date `json:"date" gorm:"not null;index:idx_transactions_user_date,priority:2"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	User     User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category Category `json:"-"`
}
