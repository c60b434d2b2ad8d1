package services

import (
	"errors"
	"testing"

	"github.com/zamanlabs/medicare/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubAccountUsers struct {
	displayName string
	deleted     []uint
}

func (stub *stubAccountUsers) FindByID(userID uint) (models.User, error) {
	return models.User{ID: userID}, nil
}

func (stub *stubAccountUsers) UpdateDisplayName(_ uint, displayName string) error {
	stub.displayName = displayName
	return nil
}

func (stub *stubAccountUsers) DeleteAccountAndRelatedData(userID uint) error {
	stub.deleted = append(stub.deleted, userID)
	return nil
}

func TestValidateDeleteAccountPassword(t *testing.T) {
	service := NewAccountService(nil)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if err := service.ValidateDeleteAccountPassword(string(passwordHash), "   "); !errors.Is(err, ErrAccountPasswordMissing) {
		t.Fatalf("expected ErrAccountPasswordMissing, got %v", err)
	}
	if err := service.ValidateDeleteAccountPassword(string(passwordHash), "WrongPass1"); !errors.Is(err, ErrAccountPasswordInvalid) {
		t.Fatalf("expected ErrAccountPasswordInvalid, got %v", err)
	}
	if err := service.ValidateDeleteAccountPassword(string(passwordHash), "  StrongPass1  "); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	users := &stubAccountUsers{}
	service := NewAccountService(users)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{ID: 5, PasswordHash: string(passwordHash)}

	if err := service.DeleteAccount(user, "WrongPass1"); !errors.Is(err, ErrAccountPasswordInvalid) {
		t.Fatalf("expected ErrAccountPasswordInvalid, got %v", err)
	}
	if len(users.deleted) != 0 {
		t.Fatal("expected no deletion with a wrong password")
	}

	if err := service.DeleteAccount(user, "StrongPass1"); err != nil {
		t.Fatalf("DeleteAccount() unexpected error: %v", err)
	}
	if len(users.deleted) != 1 || users.deleted[0] != 5 {
		t.Fatalf("expected user 5 deleted, got %#v", users.deleted)
	}
}

func TestUpdateDisplayName(t *testing.T) {
	users := &stubAccountUsers{}
	service := NewAccountService(users)

	updated, err := service.UpdateDisplayName(models.User{ID: 1, Email: "amina@example.com"}, "  Amina  ")
	if err != nil {
		t.Fatalf("UpdateDisplayName() unexpected error: %v", err)
	}
	if updated.DisplayName != "Amina" || users.displayName != "Amina" {
		t.Fatalf("unexpected display name %q / %q", updated.DisplayName, users.displayName)
	}
}
