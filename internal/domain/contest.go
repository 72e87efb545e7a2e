package domain

import "time"

// ContestPhoto Model
type ContestPhoto struct {
	ID          uint      `gorm:"primaryKey"`         // Primary key
	PetID       uint      `gorm:"not null;index"`     // Foreign key to Pet
	UserID      uint      `gorm:"not null;index"`     // Foreign key to the submitting User
	ImageURL    string    `gorm:"not null"`           // Public path of the stored image
	Description string    // Optional free-text caption
	Votes       int       `gorm:"not null;default:0"` // Vote tally, never negative
	CreatedAt   time.Time // Submission timestamp
}
