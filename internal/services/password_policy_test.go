package services

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePasswordStrength_RejectsWeakPasswords(t *testing.T) {
	testCases := []string{
		"Short1",
		"alllowercase1",
		"ALLUPPERCASE1",
		"NoDigitsHere",
		"Aa1" + strings.Repeat("x", 70),
	}

	for _, password := range testCases {
		if err := ValidatePasswordStrength(password); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword for %q, got %v", password, err)
		}
	}
}

func TestValidatePasswordStrength_AcceptsStrongPassword(t *testing.T) {
	if err := ValidatePasswordStrength("StrongPass1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidatePasswordChange(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("CurrentPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	tests := []struct {
		name    string
		current string
		next    string
		confirm string
		want    error
	}{
		{name: "missing field", current: "", next: "NewPass123", confirm: "NewPass123", want: ErrPasswordChangeInvalidInput},
		{name: "mismatch", current: "CurrentPass1", next: "NewPass123", confirm: "NewPass124", want: ErrPasswordMismatch},
		{name: "wrong current", current: "WrongPass1", next: "NewPass123", confirm: "NewPass123", want: ErrInvalidCurrentPassword},
		{name: "same password", current: "CurrentPass1", next: "CurrentPass1", confirm: "CurrentPass1", want: ErrNewPasswordMustDiffer},
		{name: "weak", current: "CurrentPass1", next: "weakpass", confirm: "weakpass", want: ErrWeakPassword},
		{name: "valid", current: "CurrentPass1", next: "NewPass123", confirm: "NewPass123", want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidatePasswordChange(string(hash), testCase.current, testCase.next, testCase.confirm)
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}
