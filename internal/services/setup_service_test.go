package services

import (
	"errors"
	"testing"
)

type stubSetupUsers struct {
	count int64
	err   error
}

func (stub stubSetupUsers) CountUsers() (int64, error) {
	return stub.count, stub.err
}

func TestSetupStatus(t *testing.T) {
	status, err := NewSetupService(stubSetupUsers{}).Status()
	if err != nil || !status.NeedsSetup {
		t.Fatalf("expected setup required on empty database, got %+v, %v", status, err)
	}
	if status.PasswordMinLength != 8 || status.PasswordMaxLength != 72 {
		t.Fatalf("unexpected password bounds %+v", status)
	}

	status, err = NewSetupService(stubSetupUsers{count: 2}).Status()
	if err != nil || status.NeedsSetup {
		t.Fatalf("expected setup not required, got %+v, %v", status, err)
	}

	if _, err := NewSetupService(stubSetupUsers{err: errors.New("locked")}).Status(); !errors.Is(err, ErrSetupStatusFailed) {
		t.Fatalf("expected ErrSetupStatusFailed, got %v", err)
	}
}
