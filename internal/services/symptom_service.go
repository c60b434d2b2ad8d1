package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zamanlabs/medicare/internal/models"
)

var (
	ErrInvalidSymptomName     = errors.New("invalid symptom name")
	ErrInvalidSymptomSeverity = errors.New("invalid symptom severity")
	ErrInvalidSymptomNotes    = errors.New("invalid symptom notes")
	ErrInvalidSymptomClientID = errors.New("invalid symptom client id")
	ErrSymptomAlreadyLogged   = errors.New("symptom already logged")
	ErrSymptomNotFound        = errors.New("symptom not found")
	ErrListSymptomsFailed     = errors.New("list symptoms failed")
	ErrCreateSymptomFailed    = errors.New("create symptom failed")
	ErrDeleteSymptomFailed    = errors.New("delete symptom failed")
)

const (
	maxSymptomNameLength     = 80
	maxSymptomNotesLength    = 1000
	maxSymptomClientIDLength = 64
)

type SymptomRepository interface {
	ListByUser(userID uint) ([]models.Symptom, error)
	ExistsByClientID(userID uint, clientID string) (bool, error)
	Create(symptom *models.Symptom) error
	FindByIDForUser(symptomID uint, userID uint) (models.Symptom, error)
	Delete(symptom *models.Symptom) error
}

type SymptomInput struct {
	ClientID  string     `json:"client_id"`
	Name      string     `json:"name"`
	Severity  int        `json:"severity"`
	Timestamp *time.Time `json:"timestamp"`
	Notes     string     `json:"notes"`
}

type SymptomService struct {
	symptoms SymptomRepository
	notifier ChangeNotifier
	clock    Clock
}

func NewSymptomService(symptoms SymptomRepository, notifier ChangeNotifier, clock Clock) *SymptomService {
	return &SymptomService{
		symptoms: symptoms,
		notifier: notifierOrNoop(notifier),
		clock:    clockOrSystem(clock),
	}
}

// ListSymptoms returns the user's entries, newest first.
func (service *SymptomService) ListSymptoms(userID uint) ([]models.Symptom, error) {
	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListSymptomsFailed, err)
	}
	SortSymptomsNewestFirst(symptoms)
	return symptoms, nil
}

func (service *SymptomService) NormalizeSymptomInput(input SymptomInput) (SymptomInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Notes = strings.TrimSpace(input.Notes)
	input.ClientID = strings.TrimSpace(input.ClientID)

	if input.Name == "" || len([]rune(input.Name)) > maxSymptomNameLength {
		return SymptomInput{}, ErrInvalidSymptomName
	}
	if input.Severity < models.MinSymptomSeverity || input.Severity > models.MaxSymptomSeverity {
		return SymptomInput{}, ErrInvalidSymptomSeverity
	}
	if len([]rune(input.Notes)) > maxSymptomNotesLength {
		return SymptomInput{}, ErrInvalidSymptomNotes
	}
	if len(input.ClientID) > maxSymptomClientIDLength {
		return SymptomInput{}, ErrInvalidSymptomClientID
	}
	if input.ClientID == "" {
		input.ClientID = uuid.NewString()
	}
	if input.Timestamp == nil || input.Timestamp.IsZero() {
		now := service.clock.Now()
		input.Timestamp = &now
	}
	return input, nil
}

// AddSymptom stores a new entry. Entries are never edited afterwards; a
// client resending the same client_id gets ErrSymptomAlreadyLogged.
func (service *SymptomService) AddSymptom(userID uint, input SymptomInput) (models.Symptom, error) {
	normalized, err := service.NormalizeSymptomInput(input)
	if err != nil {
		return models.Symptom{}, err
	}

	exists, err := service.symptoms.ExistsByClientID(userID, normalized.ClientID)
	if err != nil {
		return models.Symptom{}, fmt.Errorf("%w: %v", ErrCreateSymptomFailed, err)
	}
	if exists {
		return models.Symptom{}, ErrSymptomAlreadyLogged
	}

	symptom := models.Symptom{
		UserID:    userID,
		ClientID:  normalized.ClientID,
		Name:      normalized.Name,
		Severity:  normalized.Severity,
		Timestamp: normalized.Timestamp.UTC(),
		Notes:     normalized.Notes,
	}
	if err := service.symptoms.Create(&symptom); err != nil {
		return models.Symptom{}, fmt.Errorf("%w: %v", ErrCreateSymptomFailed, err)
	}

	service.notifier.Notify(userID)
	return symptom, nil
}

func (service *SymptomService) RemoveSymptom(userID uint, symptomID uint) error {
	symptom, err := service.symptoms.FindByIDForUser(symptomID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSymptomNotFound, err)
	}
	if err := service.symptoms.Delete(&symptom); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteSymptomFailed, err)
	}

	service.notifier.Notify(userID)
	return nil
}

func SortSymptomsNewestFirst(symptoms []models.Symptom) {
	sort.SliceStable(symptoms, func(i, j int) bool {
		return symptoms[i].Timestamp.After(symptoms[j].Timestamp)
	})
}
