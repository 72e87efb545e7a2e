package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Name      string    `gorm:"not null" json:"name"`              // Display name
	Email     string    `gorm:"uniqueIndex;not null" json:"email"` // Unique email, lookup key for auth
	Password  string    `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	CreatedAt time.Time `json:"-"`                                 // Timestamp of creation
	UpdatedAt time.Time `json:"-"`                                 // Timestamp of last update
}
