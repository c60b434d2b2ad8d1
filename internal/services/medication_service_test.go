package services

import (
	"errors"
	"testing"

	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

type stubMedicationRepo struct {
	medications []models.Medication
	updated     []models.Medication
	saved       []models.Medication
	listErr     error
}

func (stub *stubMedicationRepo) ListByUser(uint) ([]models.Medication, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return append([]models.Medication(nil), stub.medications...), nil
}

func (stub *stubMedicationRepo) Create(medication *models.Medication) error {
	medication.ID = uint(len(stub.medications) + 1)
	stub.medications = append(stub.medications, *medication)
	return nil
}

func (stub *stubMedicationRepo) FindByIDForUser(medicationID uint, userID uint) (models.Medication, error) {
	for _, medication := range stub.medications {
		if medication.ID == medicationID && medication.UserID == userID {
			return medication, nil
		}
	}
	return models.Medication{}, gorm.ErrRecordNotFound
}

func (stub *stubMedicationRepo) Save(medication *models.Medication) error {
	stub.saved = append(stub.saved, *medication)
	return nil
}

func (stub *stubMedicationRepo) UpdateTaken(medication *models.Medication) error {
	stub.updated = append(stub.updated, *medication)
	return nil
}

func (stub *stubMedicationRepo) Delete(*models.Medication) error {
	return nil
}

func TestCreateMedicationStartsNotTaken(t *testing.T) {
	repo := &stubMedicationRepo{}
	notifier := &recordingNotifier{}
	service := NewMedicationService(repo, notifier)

	medication, err := service.CreateMedication(5, MedicationInput{
		Name:      " Metformin ",
		Dosage:    "500mg",
		Frequency: "twice daily",
		StartDate: "2026-01-01",
		EndDate:   "2026-03-01",
	})
	if err != nil {
		t.Fatalf("CreateMedication() unexpected error: %v", err)
	}
	if medication.IsTaken {
		t.Fatal("expected new medication to start not taken")
	}
	if medication.Name != "Metformin" {
		t.Fatalf("expected trimmed name, got %q", medication.Name)
	}
	if medication.StartDate == nil || medication.StartDate.Format("2006-01-02") != "2026-01-01" {
		t.Fatalf("unexpected start date %v", medication.StartDate)
	}
	if len(notifier.users) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.users))
	}
}

func TestCreateMedicationValidatesInput(t *testing.T) {
	service := NewMedicationService(&stubMedicationRepo{}, nil)

	tests := []struct {
		name  string
		input MedicationInput
		want  error
	}{
		{name: "blank name", input: MedicationInput{Name: " "}, want: ErrInvalidMedicationName},
		{name: "bad date", input: MedicationInput{Name: "A", StartDate: "01/02/2026"}, want: ErrInvalidMedicationDateRange},
		{name: "end before start", input: MedicationInput{Name: "A", StartDate: "2026-02-02", EndDate: "2026-02-01"}, want: ErrInvalidMedicationDateRange},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := service.CreateMedication(1, testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestToggleTakenFlipsFlag(t *testing.T) {
	repo := &stubMedicationRepo{medications: []models.Medication{{ID: 1, UserID: 3, Name: "Aspirin"}}}
	service := NewMedicationService(repo, nil)

	medication, err := service.ToggleTaken(3, 1)
	if err != nil {
		t.Fatalf("ToggleTaken() unexpected error: %v", err)
	}
	if !medication.IsTaken {
		t.Fatal("expected medication to be taken after toggle")
	}
	if len(repo.updated) != 1 || !repo.updated[0].IsTaken {
		t.Fatalf("expected taken flag persisted, got %#v", repo.updated)
	}

	if _, err := service.ToggleTaken(4, 1); !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound for other user, got %v", err)
	}
}

func TestUpdateMedicationKeepsTakenFlag(t *testing.T) {
	repo := &stubMedicationRepo{medications: []models.Medication{{ID: 1, UserID: 3, Name: "Aspirin", IsTaken: true}}}
	service := NewMedicationService(repo, nil)

	medication, err := service.UpdateMedication(3, 1, MedicationInput{Name: "Aspirin", Dosage: "81mg"})
	if err != nil {
		t.Fatalf("UpdateMedication() unexpected error: %v", err)
	}
	if !medication.IsTaken || medication.Dosage != "81mg" {
		t.Fatalf("unexpected updated medication %#v", medication)
	}
}

func TestAdherenceSummary(t *testing.T) {
	repo := &stubMedicationRepo{medications: []models.Medication{
		{ID: 1, IsTaken: true},
		{ID: 2, IsTaken: true},
		{ID: 3},
	}}
	service := NewMedicationService(repo, nil)

	summary, err := service.Adherence(1)
	if err != nil {
		t.Fatalf("Adherence() unexpected error: %v", err)
	}
	if summary.Score != 67 || summary.Taken != 2 || summary.Total != 3 {
		t.Fatalf("Adherence() = %#v, want score 67 taken 2 total 3", summary)
	}

	empty, err := NewMedicationService(&stubMedicationRepo{}, nil).Adherence(1)
	if err != nil {
		t.Fatalf("Adherence() unexpected error: %v", err)
	}
	if empty.Score != 100 {
		t.Fatalf("expected empty adherence 100, got %d", empty.Score)
	}
}

func TestAdherenceWrapsListFailure(t *testing.T) {
	service := NewMedicationService(&stubMedicationRepo{listErr: errors.New("locked")}, nil)

	if _, err := service.Adherence(1); !errors.Is(err, ErrListMedicationsFailed) {
		t.Fatalf("expected ErrListMedicationsFailed, got %v", err)
	}
}
