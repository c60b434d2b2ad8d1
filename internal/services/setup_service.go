package services

import (
	"errors"
	"fmt"
)

var ErrSetupStatusFailed = errors.New("setup status failed")

type SetupUserRepository interface {
	CountUsers() (int64, error)
}

// SetupStatus lets a client open on registration for a fresh install and
// validate passwords before submitting them.
type SetupStatus struct {
	NeedsSetup        bool `json:"needs_setup"`
	PasswordMinLength int  `json:"password_min_length"`
	PasswordMaxLength int  `json:"password_max_length"`
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

func (service *SetupService) Status() (SetupStatus, error) {
	accounts, err := service.users.CountUsers()
	if err != nil {
		return SetupStatus{}, fmt.Errorf("%w: %v", ErrSetupStatusFailed, err)
	}
	return SetupStatus{
		NeedsSetup:        accounts == 0,
		PasswordMinLength: minPasswordLength,
		PasswordMaxLength: maxPasswordLength,
	}, nil
}
