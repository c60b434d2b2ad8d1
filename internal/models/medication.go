package models

import "time"

type Medication struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	Name      string     `gorm:"not null" json:"name"`
	Dosage    string     `gorm:"not null;default:''" json:"dosage"`
	Frequency string     `gorm:"not null;default:''" json:"frequency"`
	TimeOfDay string     `gorm:"not null;default:''" json:"time_of_day"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Notes     string     `gorm:"not null;default:''" json:"notes,omitempty"`
	IsTaken   bool       `gorm:"not null;default:false" json:"is_taken"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
