package models

import (
	"time"
)

// Category types. "both" categories accept income and expense transactions.
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
	CategoryTypeBoth    = "both"
)

// Category model. A nil UserID marks a shared default category: seeded once,
// visible to every household member and never deletable.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"` // nil = shared default
	Name      string    `json:"name" gorm:"size:50;not null"`
	Icon      string    `json:"icon" gorm:"not null"`
	Color     string    `json:"color" gorm:"size:7;not null"` // #RRGGBB
	Type      string    `json:"type" gorm:"not null"`         // income/expense/both
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
