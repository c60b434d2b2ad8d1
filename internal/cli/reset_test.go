package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/zamanlabs/medicare/internal/db"
	"github.com/zamanlabs/medicare/internal/services"
	"golang.org/x/crypto/bcrypt"
)

var temporaryPasswordLine = regexp.MustCompile(`Temporary password: (\S+)`)

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "medicare-cli-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	authService := services.NewAuthService(db.NewUserRepository(database), nil).WithHashCost(bcrypt.MinCost)
	if _, err := authService.Register(services.RegisterInput{Email: "patient@example.com", Password: "Original1"}); err != nil {
		t.Fatalf("register user: %v", err)
	}
	return authService
}

func staticPasswords(values ...string) func() ([]byte, error) {
	index := 0
	return func() ([]byte, error) {
		if index >= len(values) {
			return nil, errors.New("no more input")
		}
		value := values[index]
		index++
		return []byte(value), nil
	}
}

func TestRunResetPasswordGeneratesTemporaryPassword(t *testing.T) {
	authService := newTestAuthService(t)

	var out strings.Builder
	if err := RunResetPassword(authService, ResetOptions{Email: " Patient@Example.com ", Out: &out}); err != nil {
		t.Fatalf("RunResetPassword() unexpected error: %v", err)
	}

	match := temporaryPasswordLine.FindStringSubmatch(out.String())
	if match == nil {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}

	user, err := authService.Authenticate("patient@example.com", match[1])
	if err != nil {
		t.Fatalf("expected login with temporary password, got %v", err)
	}
	if !user.MustChangePassword {
		t.Fatal("expected must_change_password after reset")
	}
	if _, err := authService.Authenticate("patient@example.com", "Original1"); !errors.Is(err, services.ErrAuthCredentialsInvalid) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
}

func TestRunResetPasswordInteractive(t *testing.T) {
	authService := newTestAuthService(t)

	var out strings.Builder
	err := RunResetPassword(authService, ResetOptions{
		Email:        "patient@example.com",
		Interactive:  true,
		Out:          &out,
		ReadPassword: staticPasswords("Chosen123", "Chosen123"),
	})
	if err != nil {
		t.Fatalf("RunResetPassword() unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "Temporary password") {
		t.Fatalf("interactive reset must not print a password, got %q", out.String())
	}

	user, err := authService.Authenticate("patient@example.com", "Chosen123")
	if err != nil {
		t.Fatalf("expected login with chosen password, got %v", err)
	}
	if user.MustChangePassword {
		t.Fatal("expected chosen password not to require a change")
	}
}

func TestRunResetPasswordErrors(t *testing.T) {
	authService := newTestAuthService(t)

	if err := RunResetPassword(authService, ResetOptions{Email: "  "}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}

	err := RunResetPassword(authService, ResetOptions{Email: "ghost@example.com", Out: &strings.Builder{}})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	err = RunResetPassword(authService, ResetOptions{
		Email:        "patient@example.com",
		Interactive:  true,
		Out:          &strings.Builder{},
		ReadPassword: staticPasswords("Chosen123", "Chosen124"),
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	err = RunResetPassword(authService, ResetOptions{
		Email:        "patient@example.com",
		Interactive:  true,
		Out:          &strings.Builder{},
		ReadPassword: staticPasswords("short", "short"),
	})
	if err == nil || !strings.Contains(err.Error(), "8-72 characters") {
		t.Fatalf("expected weak password error, got %v", err)
	}
}
