package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/scoring"
)

var (
	ErrInvalidMedicationName      = errors.New("invalid medication name")
	ErrInvalidMedicationField     = errors.New("invalid medication field")
	ErrInvalidMedicationDateRange = errors.New("invalid medication date range")
	ErrMedicationNotFound         = errors.New("medication not found")
	ErrListMedicationsFailed      = errors.New("list medications failed")
	ErrSaveMedicationFailed       = errors.New("save medication failed")
	ErrDeleteMedicationFailed     = errors.New("delete medication failed")
)

const (
	maxMedicationNameLength  = 120
	maxMedicationFieldLength = 120
	maxMedicationNotesLength = 1000
	medicationDateLayout     = "2006-01-02"
)

type MedicationRepository interface {
	ListByUser(userID uint) ([]models.Medication, error)
	Create(medication *models.Medication) error
	FindByIDForUser(medicationID uint, userID uint) (models.Medication, error)
	Save(medication *models.Medication) error
	UpdateTaken(medication *models.Medication) error
	Delete(medication *models.Medication) error
}

// MedicationInput carries dates as YYYY-MM-DD strings; empty means unset.
type MedicationInput struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	TimeOfDay string `json:"time_of_day"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

type AdherenceSummary struct {
	Score int `json:"score"`
	Taken int `json:"taken"`
	Total int `json:"total"`
}

type MedicationService struct {
	medications MedicationRepository
	notifier    ChangeNotifier
}

func NewMedicationService(medications MedicationRepository, notifier ChangeNotifier) *MedicationService {
	return &MedicationService{
		medications: medications,
		notifier:    notifierOrNoop(notifier),
	}
}

func (service *MedicationService) ListMedications(userID uint) ([]models.Medication, error) {
	medications, err := service.medications.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListMedicationsFailed, err)
	}
	return medications, nil
}

// CreateMedication always starts the medication as not taken.
func (service *MedicationService) CreateMedication(userID uint, input MedicationInput) (models.Medication, error) {
	medication := models.Medication{UserID: userID}
	if err := applyMedicationInput(&medication, input); err != nil {
		return models.Medication{}, err
	}
	medication.IsTaken = false

	if err := service.medications.Create(&medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrSaveMedicationFailed, err)
	}
	service.notifier.Notify(userID)
	return medication, nil
}

// UpdateMedication replaces the dosing metadata and leaves IsTaken alone.
func (service *MedicationService) UpdateMedication(userID uint, medicationID uint, input MedicationInput) (models.Medication, error) {
	medication, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrMedicationNotFound, err)
	}
	if err := applyMedicationInput(&medication, input); err != nil {
		return models.Medication{}, err
	}

	if err := service.medications.Save(&medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrSaveMedicationFailed, err)
	}
	return medication, nil
}

func (service *MedicationService) ToggleTaken(userID uint, medicationID uint) (models.Medication, error) {
	medication, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrMedicationNotFound, err)
	}

	medication.IsTaken = !medication.IsTaken
	if err := service.medications.UpdateTaken(&medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrSaveMedicationFailed, err)
	}
	service.notifier.Notify(userID)
	return medication, nil
}

func (service *MedicationService) DeleteMedication(userID uint, medicationID uint) error {
	medication, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMedicationNotFound, err)
	}
	if err := service.medications.Delete(&medication); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteMedicationFailed, err)
	}
	service.notifier.Notify(userID)
	return nil
}

func (service *MedicationService) Adherence(userID uint) (AdherenceSummary, error) {
	medications, err := service.ListMedications(userID)
	if err != nil {
		return AdherenceSummary{}, err
	}
	return AdherenceSummary{
		Score: scoring.AdherenceScore(medications),
		Taken: scoring.TakenCount(medications),
		Total: len(medications),
	}, nil
}

func applyMedicationInput(medication *models.Medication, input MedicationInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxMedicationNameLength {
		return ErrInvalidMedicationName
	}

	fields := []string{
		strings.TrimSpace(input.Dosage),
		strings.TrimSpace(input.Frequency),
		strings.TrimSpace(input.TimeOfDay),
	}
	for _, field := range fields {
		if len([]rune(field)) > maxMedicationFieldLength {
			return ErrInvalidMedicationField
		}
	}
	notes := strings.TrimSpace(input.Notes)
	if len([]rune(notes)) > maxMedicationNotesLength {
		return ErrInvalidMedicationField
	}

	startDate, err := parseOptionalMedicationDate(input.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseOptionalMedicationDate(input.EndDate)
	if err != nil {
		return err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return ErrInvalidMedicationDateRange
	}

	medication.Name = name
	medication.Dosage = fields[0]
	medication.Frequency = fields[1]
	medication.TimeOfDay = fields[2]
	medication.Notes = notes
	medication.StartDate = startDate
	medication.EndDate = endDate
	return nil
}

func parseOptionalMedicationDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(medicationDateLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMedicationDateRange, err)
	}
	return &parsed, nil
}
