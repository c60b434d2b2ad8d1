package models

import "time"

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Profile is the patient record behind the profile manager. A zero value
// means the field was never filled in.
//
// Required for completion: FullName, Age, BloodGroup.
// Optional for completion: Gender, Height, Weight, MedicalConditions, Allergies.
type Profile struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	FullName          string    `gorm:"not null;default:''" json:"full_name"`
	Age               int       `gorm:"not null;default:0" json:"age"`
	BloodGroup        string    `gorm:"not null;default:''" json:"blood_group"`
	Gender            string    `gorm:"not null;default:''" json:"gender"`
	Height            float64   `gorm:"not null;default:0" json:"height"`
	Weight            float64   `gorm:"not null;default:0" json:"weight"`
	MedicalConditions []string  `gorm:"serializer:json" json:"medical_conditions"`
	Allergies         []string  `gorm:"serializer:json" json:"allergies"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func DefaultProfile(userID uint, fullName string) Profile {
	return Profile{
		UserID:            userID,
		FullName:          fullName,
		MedicalConditions: []string{},
		Allergies:         []string{},
	}
}
