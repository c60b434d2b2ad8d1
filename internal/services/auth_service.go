package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrAuthUserNotFound       = errors.New("auth user not found")
	ErrRegisterFailed         = errors.New("register failed")
	ErrAuthLookupFailed       = errors.New("auth lookup failed")
	ErrPasswordUpdateFailed   = errors.New("password update failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	TouchLastLogin(userID uint, at time.Time) error
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type AuthService struct {
	users    AuthUserRepository
	clock    Clock
	hashCost int
}

func NewAuthService(users AuthUserRepository, clock Clock) *AuthService {
	return &AuthService{
		users:    users,
		clock:    clockOrSystem(clock),
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost lowers bcrypt cost for tests.
func (service *AuthService) WithHashCost(cost int) *AuthService {
	service.hashCost = cost
	return service
}

func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	displayName, err := NormalizeDisplayName(input.DisplayName, email)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    service.clock.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	return user, nil
}

// Authenticate checks credentials and stamps the login time. Unknown emails
// and wrong passwords yield the same ErrAuthCredentialsInvalid.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	now := service.clock.Now().UTC()
	if err := service.users.TouchLastLogin(user.ID, now); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	user.LastLoginAt = &now
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	return user, nil
}

// ChangePassword clears MustChangePassword on success.
func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string, confirmPassword string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if err := ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), service.hashCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}

// ResetPassword replaces the password of the account registered under
// emailRaw. mustChange marks the new password as temporary.
func (service *AuthService) ResetPassword(emailRaw string, newPassword string, mustChange bool) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), service.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), mustChange); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = mustChange
	return user, nil
}
