package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zamanlabs/medicare/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountPasswordMissing = errors.New("account password missing")
	ErrAccountPasswordInvalid = errors.New("account password invalid")
	ErrAccountUpdateFailed    = errors.New("account update failed")
	ErrAccountDeleteFailed    = errors.New("account delete failed")
)

type AccountUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateDisplayName(userID uint, displayName string) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AccountService struct {
	users AccountUserRepository
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users}
}

func (service *AccountService) UpdateDisplayName(user models.User, raw string) (models.User, error) {
	displayName, err := NormalizeDisplayName(raw, user.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdateDisplayName(user.ID, displayName); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountUpdateFailed, err)
	}
	user.DisplayName = displayName
	return user, nil
}

func (service *AccountService) ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccountPasswordInvalid
	}
	return nil
}

// DeleteAccount removes the user with every symptom, medication, contact and
// profile row once the password is confirmed.
func (service *AccountService) DeleteAccount(user models.User, rawPassword string) error {
	if err := service.ValidateDeleteAccountPassword(user.PasswordHash, rawPassword); err != nil {
		return err
	}
	if err := service.users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDeleteFailed, err)
	}
	return nil
}
