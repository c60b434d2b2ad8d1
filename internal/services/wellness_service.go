package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/scoring"
	"gorm.io/gorm"
)

var ErrWellnessLoadFailed = errors.New("wellness load failed")

type WellnessSymptomReader interface {
	ListByUser(userID uint) ([]models.Symptom, error)
}

type WellnessMedicationReader interface {
	ListByUser(userID uint) ([]models.Medication, error)
}

type WellnessProfileReader interface {
	FindByUser(userID uint) (models.Profile, error)
}

type WellnessReport struct {
	scoring.WellnessScore
	ProfileCompletion int       `json:"profile_completion"`
	AdherenceScore    int       `json:"adherence_score"`
	SymptomCount      int       `json:"symptom_count"`
	MedicationCount   int       `json:"medication_count"`
	ComputedAt        time.Time `json:"computed_at"`
}

type WellnessService struct {
	symptoms       WellnessSymptomReader
	medications    WellnessMedicationReader
	profiles       WellnessProfileReader
	doctorFeedback float64
	clock          Clock
}

func NewWellnessService(symptoms WellnessSymptomReader, medications WellnessMedicationReader, profiles WellnessProfileReader, doctorFeedback float64, clock Clock) *WellnessService {
	return &WellnessService{
		symptoms:       symptoms,
		medications:    medications,
		profiles:       profiles,
		doctorFeedback: doctorFeedback,
		clock:          clockOrSystem(clock),
	}
}

func (service *WellnessService) DoctorFeedback() float64 {
	return service.doctorFeedback
}

// Compute reloads the user's data and runs the scoring engine over it.
// A user without a profile has zero completion.
func (service *WellnessService) Compute(userID uint) (WellnessReport, error) {
	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return WellnessReport{}, fmt.Errorf("%w: symptoms: %v", ErrWellnessLoadFailed, err)
	}
	medications, err := service.medications.ListByUser(userID)
	if err != nil {
		return WellnessReport{}, fmt.Errorf("%w: medications: %v", ErrWellnessLoadFailed, err)
	}

	completion := 0
	profile, err := service.profiles.FindByUser(userID)
	switch {
	case err == nil:
		completion = scoring.ProfileCompletion(profile)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return WellnessReport{}, fmt.Errorf("%w: profile: %v", ErrWellnessLoadFailed, err)
	}

	score := scoring.Compute(scoring.Inputs{
		Symptoms:       symptoms,
		Medications:    medications,
		DoctorFeedback: service.doctorFeedback,
	})

	return WellnessReport{
		WellnessScore:     score,
		ProfileCompletion: completion,
		AdherenceScore:    scoring.AdherenceScore(medications),
		SymptomCount:      len(symptoms),
		MedicationCount:   len(medications),
		ComputedAt:        service.clock.Now().UTC(),
	}, nil
}
