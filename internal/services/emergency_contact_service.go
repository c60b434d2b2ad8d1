package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zamanlabs/medicare/internal/models"
)

var (
	ErrInvalidContactName      = errors.New("invalid contact name")
	ErrInvalidContactPhone     = errors.New("invalid contact phone")
	ErrInvalidContactRelation  = errors.New("invalid contact relationship")
	ErrEmergencyContactMissing = errors.New("emergency contact not found")
	ErrListContactsFailed      = errors.New("list emergency contacts failed")
	ErrSaveContactFailed       = errors.New("save emergency contact failed")
	ErrDeleteContactFailed     = errors.New("delete emergency contact failed")
)

const (
	maxContactNameLength     = 120
	maxContactRelationLength = 60
)

var contactPhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

type EmergencyContactRepository interface {
	ListByUser(userID uint) ([]models.EmergencyContact, error)
	FindByIDForUser(contactID uint, userID uint) (models.EmergencyContact, error)
	Save(contact *models.EmergencyContact) error
	Delete(contact *models.EmergencyContact) error
}

type EmergencyContactInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"is_primary"`
}

type EmergencyContactService struct {
	contacts EmergencyContactRepository
}

func NewEmergencyContactService(contacts EmergencyContactRepository) *EmergencyContactService {
	return &EmergencyContactService{contacts: contacts}
}

func (service *EmergencyContactService) ListContacts(userID uint) ([]models.EmergencyContact, error) {
	contacts, err := service.contacts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListContactsFailed, err)
	}
	return contacts, nil
}

// CreateContact makes the first contact of a user primary.
func (service *EmergencyContactService) CreateContact(userID uint, input EmergencyContactInput) (models.EmergencyContact, error) {
	normalized, err := NormalizeEmergencyContactInput(input)
	if err != nil {
		return models.EmergencyContact{}, err
	}

	existing, err := service.ListContacts(userID)
	if err != nil {
		return models.EmergencyContact{}, err
	}

	contact := models.EmergencyContact{
		UserID:       userID,
		Name:         normalized.Name,
		Phone:        normalized.Phone,
		Relationship: normalized.Relationship,
		IsPrimary:    normalized.IsPrimary || len(existing) == 0,
	}
	if err := service.contacts.Save(&contact); err != nil {
		return models.EmergencyContact{}, fmt.Errorf("%w: %v", ErrSaveContactFailed, err)
	}
	return contact, nil
}

func (service *EmergencyContactService) UpdateContact(userID uint, contactID uint, input EmergencyContactInput) (models.EmergencyContact, error) {
	normalized, err := NormalizeEmergencyContactInput(input)
	if err != nil {
		return models.EmergencyContact{}, err
	}

	contact, err := service.contacts.FindByIDForUser(contactID, userID)
	if err != nil {
		return models.EmergencyContact{}, fmt.Errorf("%w: %v", ErrEmergencyContactMissing, err)
	}
	contact.Name = normalized.Name
	contact.Phone = normalized.Phone
	contact.Relationship = normalized.Relationship
	contact.IsPrimary = normalized.IsPrimary

	if err := service.contacts.Save(&contact); err != nil {
		return models.EmergencyContact{}, fmt.Errorf("%w: %v", ErrSaveContactFailed, err)
	}
	return contact, nil
}

func (service *EmergencyContactService) DeleteContact(userID uint, contactID uint) error {
	contact, err := service.contacts.FindByIDForUser(contactID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmergencyContactMissing, err)
	}
	if err := service.contacts.Delete(&contact); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteContactFailed, err)
	}
	return nil
}

func NormalizeEmergencyContactInput(input EmergencyContactInput) (EmergencyContactInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Relationship = strings.TrimSpace(input.Relationship)

	if input.Name == "" || len([]rune(input.Name)) > maxContactNameLength {
		return EmergencyContactInput{}, ErrInvalidContactName
	}
	if !contactPhonePattern.MatchString(input.Phone) {
		return EmergencyContactInput{}, ErrInvalidContactPhone
	}
	if len([]rune(input.Relationship)) > maxContactRelationLength {
		return EmergencyContactInput{}, ErrInvalidContactRelation
	}
	return input, nil
}
