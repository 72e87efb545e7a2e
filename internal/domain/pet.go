package domain

import "time"

// Pet Model
type Pet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`    // Primary key
	Name      string    `gorm:"not null" json:"name"`    // Pet name
	Type      string    `json:"type"`                    // Species, optional
	Breed     string    `gorm:"not null" json:"breed"`   // Breed
	BirthDate time.Time `gorm:"not null" json:"-"`       // Birth date, formatted by handlers
	OwnerID   uint      `gorm:"index" json:"owner_id"`   // Foreign key to User
	CreatedAt time.Time `json:"-"`                       // Timestamp of creation
}
