package services

import (
	"errors"
	"testing"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/scoring"
	"gorm.io/gorm"
)

type stubWellnessSources struct {
	symptoms    []models.Symptom
	medications []models.Medication
	profile     *models.Profile
	profileErr  error
}

type wellnessSymptomStub struct{ *stubWellnessSources }

func (stub wellnessSymptomStub) ListByUser(uint) ([]models.Symptom, error) {
	return stub.symptoms, nil
}

type wellnessMedicationStub struct{ *stubWellnessSources }

func (stub wellnessMedicationStub) ListByUser(uint) ([]models.Medication, error) {
	return stub.medications, nil
}

func (stub *stubWellnessSources) FindByUser(uint) (models.Profile, error) {
	if stub.profileErr != nil {
		return models.Profile{}, stub.profileErr
	}
	if stub.profile == nil {
		return models.Profile{}, gorm.ErrRecordNotFound
	}
	return *stub.profile, nil
}

func newStubWellnessService(sources *stubWellnessSources, feedback float64, now time.Time) *WellnessService {
	return NewWellnessService(wellnessSymptomStub{sources}, wellnessMedicationStub{sources}, sources, feedback, newManualClock(now))
}

func TestWellnessComputeWithoutDataUsesFeedbackOnly(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	service := newStubWellnessService(&stubWellnessSources{}, scoring.DefaultDoctorFeedback, now)

	report, err := service.Compute(1)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	// 100*0.5 + 100*0.3 + 80*0.2
	if report.Value != 96 {
		t.Fatalf("expected wellness 96, got %d", report.Value)
	}
	if report.ProfileCompletion != 0 || report.AdherenceScore != 100 {
		t.Fatalf("unexpected report %#v", report)
	}
	if !report.ComputedAt.Equal(now) {
		t.Fatalf("expected computed_at %s, got %s", now, report.ComputedAt)
	}
}

func TestWellnessComputeCombinesStores(t *testing.T) {
	sources := &stubWellnessSources{
		symptoms: []models.Symptom{{Severity: 4}, {Severity: 6}},
		medications: []models.Medication{
			{IsTaken: true},
			{IsTaken: true},
			{IsTaken: false},
			{IsTaken: false},
		},
		profile: &models.Profile{FullName: "Amina", Age: 34, BloodGroup: "O+"},
	}
	service := newStubWellnessService(sources, 20, time.Now())

	report, err := service.Compute(1)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	// impacts 6 and 9, mean 7.5, symptom 62.5; adherence 50; feedback 100
	// 31.25 + 15 + 20 = 66.25
	if report.Value != 66 {
		t.Fatalf("expected wellness 66, got %d", report.Value)
	}
	if report.Status.Label != "Good condition" {
		t.Fatalf("expected Good condition, got %q", report.Status.Label)
	}
	if report.ProfileCompletion != 70 {
		t.Fatalf("expected profile completion 70, got %d", report.ProfileCompletion)
	}
	if report.SymptomCount != 2 || report.MedicationCount != 4 {
		t.Fatalf("unexpected counts %#v", report)
	}
}

func TestWellnessComputeWrapsProfileFailure(t *testing.T) {
	service := newStubWellnessService(&stubWellnessSources{profileErr: errors.New("io")}, 16, time.Now())

	if _, err := service.Compute(1); !errors.Is(err, ErrWellnessLoadFailed) {
		t.Fatalf("expected ErrWellnessLoadFailed, got %v", err)
	}
}
