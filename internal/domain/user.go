package domain

import "time"

// User Model
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`                                   // Primary key
	Email        string        `gorm:"unique;not null" json:"email"`                           // Unique email address
	Name         string        `gorm:"not null" json:"name"`                                   // Display name
	Password     string        `gorm:"not null" json:"-"`                                      // Hashed password, never serialized
	CreatedAt    time.Time     `json:"created_at"`                                             // Timestamp of registration
	Categories   []Category    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Category
	Transactions []Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Transaction
}
