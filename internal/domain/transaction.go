package domain

import (
	"time"

	"github.com/shopspring/decimal" // Decimal type for money amounts
)

// Transaction types: income or expense
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is one of the supported transaction types
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction Model
type Transaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                        // Primary key
	UserID       uint            `gorm:"index;not null" json:"user_id"`               // Foreign key to User
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`   // Transaction amount, always positive
	CategoryID   *uint           `json:"category_id"`                                 // Optional foreign key to Category
	Description  string          `gorm:"type:text" json:"description"`                // Free-text description
	Type         string          `gorm:"size:20;not null" json:"type"`                // Transaction type: income or expense
	Date         Date            `gorm:"type:date;index;not null" json:"date"`        // Calendar date, no time component
	CreatedAt    time.Time       `json:"created_at"`                                  // Timestamp of creation
	Category     *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Category reference, nulled on category delete
	CategoryName *string         `gorm:"->;-:migration" json:"category_name"`         // Joined category name, read-only
}
