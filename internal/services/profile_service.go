package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/scoring"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrProfileLoadFailed      = errors.New("profile load failed")
	ErrProfileSaveFailed      = errors.New("profile save failed")
	ErrInvalidProfileName     = errors.New("invalid profile name")
	ErrInvalidProfileAge      = errors.New("invalid profile age")
	ErrInvalidBloodGroup      = errors.New("invalid blood group")
	ErrInvalidProfileGender   = errors.New("invalid profile gender")
	ErrInvalidProfileMeasure  = errors.New("invalid profile measurement")
	ErrInvalidProfileListItem = errors.New("invalid profile list item")
	ErrProfileIndexOutOfRange = errors.New("profile list index out of range")
)

const (
	maxProfileNameLength     = 120
	maxProfileAge            = 150
	maxProfileHeightCM       = 300
	maxProfileWeightKG       = 700
	maxProfileListItemLength = 120
	maxProfileListItems      = 50
)

var profileGenders = []string{"male", "female", "other"}

type ProfileRepository interface {
	FindByUser(userID uint) (models.Profile, error)
	Create(profile *models.Profile) error
	Save(profile *models.Profile) error
}

type ProfileInput struct {
	FullName          string   `json:"full_name"`
	Age               int      `json:"age"`
	BloodGroup        string   `json:"blood_group"`
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"`
	Weight            float64  `json:"weight"`
	MedicalConditions []string `json:"medical_conditions"`
	Allergies         []string `json:"allergies"`
}

type ProfileCompletionReport struct {
	Percentage int                     `json:"percentage"`
	Checklist  scoring.ProfileChecklist `json:"checklist"`
}

type ProfileService struct {
	profiles ProfileRepository
	notifier ChangeNotifier
}

func NewProfileService(profiles ProfileRepository, notifier ChangeNotifier) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		notifier: notifierOrNoop(notifier),
	}
}

func (service *ProfileService) FetchProfile(userID uint) (models.Profile, error) {
	profile, err := service.profiles.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	ensureProfileLists(&profile)
	return profile, nil
}

// CreateDefaultProfile returns the existing profile when there is one.
func (service *ProfileService) CreateDefaultProfile(userID uint, fullName string) (models.Profile, error) {
	existing, err := service.FetchProfile(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return models.Profile{}, err
	}

	profile := models.DefaultProfile(userID, strings.TrimSpace(fullName))
	if err := service.profiles.Create(&profile); err != nil {
		// A concurrent request may have created it first.
		if existing, fetchErr := service.FetchProfile(userID); fetchErr == nil {
			return existing, nil
		}
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}
	service.notifier.Notify(userID)
	return profile, nil
}

// FetchOrCreateProfile creates a default profile when the user has none.
func (service *ProfileService) FetchOrCreateProfile(userID uint, fullName string) (models.Profile, error) {
	profile, err := service.FetchProfile(userID)
	if errors.Is(err, ErrProfileNotFound) {
		return service.CreateDefaultProfile(userID, fullName)
	}
	return profile, err
}

func (service *ProfileService) SaveProfile(userID uint, input ProfileInput) (models.Profile, error) {
	normalized, err := NormalizeProfileInput(input)
	if err != nil {
		return models.Profile{}, err
	}

	profile, err := service.FetchOrCreateProfile(userID, normalized.FullName)
	if err != nil {
		return models.Profile{}, err
	}

	profile.FullName = normalized.FullName
	profile.Age = normalized.Age
	profile.BloodGroup = normalized.BloodGroup
	profile.Gender = normalized.Gender
	profile.Height = normalized.Height
	profile.Weight = normalized.Weight
	profile.MedicalConditions = normalized.MedicalConditions
	profile.Allergies = normalized.Allergies

	return profile, service.save(&profile)
}

func (service *ProfileService) AddMedicalCondition(userID uint, condition string) (models.Profile, error) {
	return service.mutateList(userID, func(profile *models.Profile) error {
		updated, err := appendProfileListItem(profile.MedicalConditions, condition)
		if err != nil {
			return err
		}
		profile.MedicalConditions = updated
		return nil
	})
}

func (service *ProfileService) RemoveMedicalCondition(userID uint, index int) (models.Profile, error) {
	return service.mutateList(userID, func(profile *models.Profile) error {
		updated, err := removeProfileListItem(profile.MedicalConditions, index)
		if err != nil {
			return err
		}
		profile.MedicalConditions = updated
		return nil
	})
}

func (service *ProfileService) AddAllergy(userID uint, allergy string) (models.Profile, error) {
	return service.mutateList(userID, func(profile *models.Profile) error {
		updated, err := appendProfileListItem(profile.Allergies, allergy)
		if err != nil {
			return err
		}
		profile.Allergies = updated
		return nil
	})
}

func (service *ProfileService) RemoveAllergy(userID uint, index int) (models.Profile, error) {
	return service.mutateList(userID, func(profile *models.Profile) error {
		updated, err := removeProfileListItem(profile.Allergies, index)
		if err != nil {
			return err
		}
		profile.Allergies = updated
		return nil
	})
}

// Completion reports 0% for a user who has no profile yet.
func (service *ProfileService) Completion(userID uint) (ProfileCompletionReport, error) {
	profile, err := service.FetchProfile(userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return ProfileCompletionReport{}, err
	}
	return ProfileCompletionReport{
		Percentage: scoring.ProfileCompletion(profile),
		Checklist:  scoring.BuildProfileChecklist(profile),
	}, nil
}

func (service *ProfileService) mutateList(userID uint, mutate func(profile *models.Profile) error) (models.Profile, error) {
	profile, err := service.FetchProfile(userID)
	if err != nil {
		return models.Profile{}, err
	}
	if err := mutate(&profile); err != nil {
		return models.Profile{}, err
	}
	return profile, service.save(&profile)
}

func (service *ProfileService) save(profile *models.Profile) error {
	if err := service.profiles.Save(profile); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}
	service.notifier.Notify(profile.UserID)
	return nil
}

func NormalizeProfileInput(input ProfileInput) (ProfileInput, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if len([]rune(input.FullName)) > maxProfileNameLength {
		return ProfileInput{}, ErrInvalidProfileName
	}
	if input.Age < 0 || input.Age > maxProfileAge {
		return ProfileInput{}, ErrInvalidProfileAge
	}

	bloodGroup, err := normalizeBloodGroup(input.BloodGroup)
	if err != nil {
		return ProfileInput{}, err
	}
	input.BloodGroup = bloodGroup

	gender, err := normalizeProfileGender(input.Gender)
	if err != nil {
		return ProfileInput{}, err
	}
	input.Gender = gender

	if input.Height < 0 || input.Height > maxProfileHeightCM {
		return ProfileInput{}, ErrInvalidProfileMeasure
	}
	if input.Weight < 0 || input.Weight > maxProfileWeightKG {
		return ProfileInput{}, ErrInvalidProfileMeasure
	}

	conditions, err := normalizeProfileList(input.MedicalConditions)
	if err != nil {
		return ProfileInput{}, err
	}
	allergies, err := normalizeProfileList(input.Allergies)
	if err != nil {
		return ProfileInput{}, err
	}
	input.MedicalConditions = conditions
	input.Allergies = allergies
	return input, nil
}

func normalizeBloodGroup(raw string) (string, error) {
	value := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if value == "" {
		return "", nil
	}
	for _, group := range models.BloodGroups {
		if value == group {
			return group, nil
		}
	}
	return "", ErrInvalidBloodGroup
}

func normalizeProfileGender(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	for _, gender := range profileGenders {
		if value == gender {
			return gender, nil
		}
	}
	return "", ErrInvalidProfileGender
}

func normalizeProfileList(values []string) ([]string, error) {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		var err error
		normalized, err = appendProfileListItem(normalized, value)
		if err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

func appendProfileListItem(values []string, raw string) ([]string, error) {
	item := strings.TrimSpace(raw)
	if item == "" || len([]rune(item)) > maxProfileListItemLength {
		return nil, ErrInvalidProfileListItem
	}
	if len(values) >= maxProfileListItems {
		return nil, ErrInvalidProfileListItem
	}
	updated := make([]string, 0, len(values)+1)
	updated = append(updated, values...)
	return append(updated, item), nil
}

func removeProfileListItem(values []string, index int) ([]string, error) {
	if index < 0 || index >= len(values) {
		return nil, ErrProfileIndexOutOfRange
	}
	updated := make([]string, 0, len(values)-1)
	updated = append(updated, values[:index]...)
	return append(updated, values[index+1:]...), nil
}

func ensureProfileLists(profile *models.Profile) {
	if profile.MedicalConditions == nil {
		profile.MedicalConditions = []string{}
	}
	if profile.Allergies == nil {
		profile.Allergies = []string{}
	}
}
