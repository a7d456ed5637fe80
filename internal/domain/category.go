package domain

import "time"

// Category Model
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`           // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`  // Foreign key to User
	Name      string    `gorm:"size:100;not null" json:"name"`  // Category name
	Color     string    `gorm:"size:7" json:"color"`            // Display color (hex, e.g. #FF6B6B)
	CreatedAt time.Time `json:"created_at"`                     // Timestamp of creation
}

// DefaultCategories are created for every new user at registration
var DefaultCategories = []Category{
	{Name: "Food", Color: "#FF6B6B"},
	{Name: "Transport", Color: "#4ECDC4"},
	{Name: "Work", Color: "#45B7D1"},
	{Name: "Other", Color: "#95E1D3"},
}
