package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
)

const exportDateLayout = "2006-01-02"

var ErrExportLoadFailed = errors.New("export load failed")

type ExportProfileReader interface {
	FetchProfile(userID uint) (models.Profile, error)
}

type ExportSymptomReader interface {
	ListSymptoms(userID uint) ([]models.Symptom, error)
}

type ExportMedicationReader interface {
	ListMedications(userID uint) ([]models.Medication, error)
}

type ExportContactReader interface {
	ListContacts(userID uint) ([]models.EmergencyContact, error)
}

type ExportWellnessReader interface {
	Compute(userID uint) (WellnessReport, error)
}

// ExportPayload keeps the client's storage key names so a browser can load
// it back into local storage.
type ExportPayload struct {
	ExportedAt        time.Time                 `json:"exportedAt"`
	Profile           *models.Profile           `json:"profile"`
	Symptoms          []models.Symptom          `json:"symptoms"`
	Medications       []models.Medication       `json:"medications"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	Wellness          WellnessReport            `json:"wellness"`
}

type ExportSummary struct {
	Symptoms    int    `json:"symptoms"`
	Medications int    `json:"medications"`
	Contacts    int    `json:"contacts"`
	HasData     bool   `json:"has_data"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
}

type ExportService struct {
	profiles    ExportProfileReader
	symptoms    ExportSymptomReader
	medications ExportMedicationReader
	contacts    ExportContactReader
	wellness    ExportWellnessReader
	clock       Clock
}

func NewExportService(profiles ExportProfileReader, symptoms ExportSymptomReader, medications ExportMedicationReader, contacts ExportContactReader, wellness ExportWellnessReader, clock Clock) *ExportService {
	return &ExportService{
		profiles:    profiles,
		symptoms:    symptoms,
		medications: medications,
		contacts:    contacts,
		wellness:    wellness,
		clock:       clockOrSystem(clock),
	}
}

func (service *ExportService) BuildPayload(userID uint) (ExportPayload, error) {
	payload := ExportPayload{ExportedAt: service.clock.Now().UTC()}

	profile, err := service.profiles.FetchProfile(userID)
	switch {
	case err == nil:
		payload.Profile = &profile
	case errors.Is(err, ErrProfileNotFound):
	default:
		return ExportPayload{}, fmt.Errorf("%w: %v", ErrExportLoadFailed, err)
	}

	if payload.Symptoms, err = service.symptoms.ListSymptoms(userID); err != nil {
		return ExportPayload{}, fmt.Errorf("%w: %v", ErrExportLoadFailed, err)
	}
	if payload.Medications, err = service.medications.ListMedications(userID); err != nil {
		return ExportPayload{}, fmt.Errorf("%w: %v", ErrExportLoadFailed, err)
	}
	if payload.EmergencyContacts, err = service.contacts.ListContacts(userID); err != nil {
		return ExportPayload{}, fmt.Errorf("%w: %v", ErrExportLoadFailed, err)
	}
	if payload.Wellness, err = service.wellness.Compute(userID); err != nil {
		return ExportPayload{}, fmt.Errorf("%w: %v", ErrExportLoadFailed, err)
	}
	return payload, nil
}

func (payload ExportPayload) Summary() ExportSummary {
	summary := ExportSummary{
		Symptoms:    len(payload.Symptoms),
		Medications: len(payload.Medications),
		Contacts:    len(payload.EmergencyContacts),
	}
	summary.HasData = payload.Profile != nil || summary.Symptoms+summary.Medications+summary.Contacts > 0
	if len(payload.Symptoms) == 0 {
		return summary
	}

	first := payload.Symptoms[0].Timestamp
	last := first
	for _, symptom := range payload.Symptoms[1:] {
		if symptom.Timestamp.Before(first) {
			first = symptom.Timestamp
		}
		if symptom.Timestamp.After(last) {
			last = symptom.Timestamp
		}
	}
	summary.DateFrom = first.UTC().Format(exportDateLayout)
	summary.DateTo = last.UTC().Format(exportDateLayout)
	return summary
}

// ExportFileName dates the file in now's location.
func ExportFileName(prefix string, now time.Time, extension string) string {
	return fmt.Sprintf("%s-%s.%s", strings.TrimSpace(prefix), now.Format(exportDateLayout), extension)
}

func exportYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func exportOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(exportDateLayout)
}
