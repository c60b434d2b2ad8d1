package models

import "time"

const (
	MinSymptomSeverity = 1
	MaxSymptomSeverity = 10
)

type Symptom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_symptoms_user_client" json:"-"`
	ClientID  string    `gorm:"not null;uniqueIndex:uidx_symptoms_user_client" json:"client_id"`
	Name      string    `gorm:"not null" json:"name"`
	Severity  int       `gorm:"not null" json:"severity"`
	Timestamp time.Time `gorm:"column:logged_at;not null" json:"timestamp"`
	Notes     string    `gorm:"not null;default:''" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func CommonSymptomNames() []string {
	return []string{
		"Headache",
		"Fever",
		"Cough",
		"Fatigue",
		"Nausea",
		"Dizziness",
		"Shortness of breath",
		"Chest pain",
		"Back pain",
		"Sore throat",
		"Joint pain",
		"Insomnia",
	}
}
