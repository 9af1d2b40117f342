package models

import "time"

// Team is a named group participants can pick on the registration form.
// Registrations refer to it by name only.
type Team struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (Team) TableName() string {
	return "teams"
}
