package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/security"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type PasswordResetter interface {
	ResetPassword(email string, newPassword string, mustChange bool) (models.User, error)
}

type ResetOptions struct {
	Email string
	// Interactive prompts for the new password instead of generating a
	// temporary one.
	Interactive  bool
	Out          io.Writer
	ReadPassword func() ([]byte, error)
	Logger       *zap.Logger
}

// RunResetPassword resets the account password. A generated password is
// printed once and must be changed on the next login.
func RunResetPassword(resetter PasswordResetter, options ResetOptions) error {
	email := strings.TrimSpace(options.Email)
	if email == "" {
		return ErrEmailRequired
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	readPassword := options.ReadPassword
	if readPassword == nil {
		readPassword = func() ([]byte, error) {
			return readPasswordNoEcho(os.Stdin)
		}
	}

	password := ""
	mustChange := true
	if options.Interactive {
		prompted, err := promptNewPassword(out, readPassword)
		if err != nil {
			return err
		}
		password = prompted
		mustChange = false
	} else {
		generated, err := security.TemporaryPassword(security.TemporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		password = generated
	}

	user, err := resetter.ResetPassword(email, password, mustChange)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthUserNotFound):
			return fmt.Errorf("user %s not found", strings.ToLower(email))
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return fmt.Errorf("invalid email address %q", email)
		case errors.Is(err, services.ErrWeakPassword):
			return errors.New("password must be 8-72 characters with upper-case, lower-case and digit")
		}
		return fmt.Errorf("reset password: %w", err)
	}
	logger.Info("password reset", zap.Uint("user_id", user.ID), zap.Bool("temporary", mustChange))

	fmt.Fprintln(out, "Password reset successful")
	if mustChange {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "User must change password on next login.")
	}
	return nil
}

func promptNewPassword(out io.Writer, readPassword func() ([]byte, error)) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	second, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", ErrPasswordMismatch
	}
	return string(first), nil
}
