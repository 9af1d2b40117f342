package models

import "time"

// Registration is one public form submission.
type Registration struct {
	ID         uint      `gorm:"primaryKey"`
	Team       string    `gorm:"size:255;not null;index"`
	InGameName string    `gorm:"column:in_game_name;size:255;not null"`
	Tanks      string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (Registration) TableName() string {
	return "registrations"
}
