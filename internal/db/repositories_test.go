package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "medicare-repos.db"))
	return NewRepositories(database)
}

func createTestUser(t *testing.T, repositories *Repositories, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestUserRepositoryFindsByNormalizedEmail(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "Patient@Example.com")

	found, err := repositories.Users.FindByNormalizedEmail("patient@example.com")
	if err != nil {
		t.Fatalf("find by normalized email: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, found.ID)
	}

	exists, err := repositories.Users.ExistsByNormalizedEmail("patient@example.com")
	if err != nil || !exists {
		t.Fatalf("expected normalized email to exist, exists=%v err=%v", exists, err)
	}

	duplicate := models.User{Email: " patient@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := repositories.Users.Create(&duplicate); err == nil {
		t.Fatal("expected normalized email index to reject duplicate")
	}
}

func TestUserRepositoryTouchLastLogin(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "login@example.com")

	at := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	if err := repositories.Users.TouchLastLogin(user.ID, at); err != nil {
		t.Fatalf("touch last login: %v", err)
	}

	reloaded, err := repositories.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(at) {
		t.Fatalf("expected last login %s, got %v", at, reloaded.LastLoginAt)
	}
}

func TestProfileRepositoryRoundTripsListFields(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "profile@example.com")

	if _, err := repositories.Profiles.FindByUser(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found before create, got %v", err)
	}

	profile := models.DefaultProfile(user.ID, "Amina Rahman")
	profile.MedicalConditions = []string{"Asthma", "Hypertension"}
	profile.Allergies = []string{"Penicillin"}
	if err := repositories.Profiles.Create(&profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	loaded, err := repositories.Profiles.FindByUser(user.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if len(loaded.MedicalConditions) != 2 || loaded.MedicalConditions[1] != "Hypertension" {
		t.Fatalf("unexpected conditions %#v", loaded.MedicalConditions)
	}
	if len(loaded.Allergies) != 1 || loaded.Allergies[0] != "Penicillin" {
		t.Fatalf("unexpected allergies %#v", loaded.Allergies)
	}
}

func TestSymptomRepositoryListsNewestFirst(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "symptoms@example.com")
	base := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)

	for index, name := range []string{"Headache", "Fever", "Cough"} {
		symptom := models.Symptom{
			UserID:    user.ID,
			ClientID:  name,
			Name:      name,
			Severity:  index + 2,
			Timestamp: base.Add(time.Duration(index) * time.Hour),
		}
		if err := repositories.Symptoms.Create(&symptom); err != nil {
			t.Fatalf("create symptom %s: %v", name, err)
		}
	}

	symptoms, err := repositories.Symptoms.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list symptoms: %v", err)
	}
	if len(symptoms) != 3 {
		t.Fatalf("expected 3 symptoms, got %d", len(symptoms))
	}
	if symptoms[0].Name != "Cough" || symptoms[2].Name != "Headache" {
		t.Fatalf("expected newest first, got %s..%s", symptoms[0].Name, symptoms[2].Name)
	}

	exists, err := repositories.Symptoms.ExistsByClientID(user.ID, "Fever")
	if err != nil || !exists {
		t.Fatalf("expected client id to exist, exists=%v err=%v", exists, err)
	}

	invalid := models.Symptom{UserID: user.ID, ClientID: "bad", Name: "Bad", Severity: 11, Timestamp: base}
	if err := repositories.Symptoms.Create(&invalid); err == nil {
		t.Fatal("expected severity check constraint to reject 11")
	}
}

func TestMedicationRepositoryUpdateTakenTouchesOnlyFlag(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "meds@example.com")

	stale := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	medication := models.Medication{UserID: user.ID, Name: "Metformin", Dosage: "500mg", CreatedAt: stale, UpdatedAt: stale}
	if err := repositories.Medications.Create(&medication); err != nil {
		t.Fatalf("create medication: %v", err)
	}

	medication.IsTaken = true
	medication.Dosage = "changed"
	if err := repositories.Medications.UpdateTaken(&medication); err != nil {
		t.Fatalf("update taken: %v", err)
	}

	loaded, err := repositories.Medications.FindByIDForUser(medication.ID, user.ID)
	if err != nil {
		t.Fatalf("load medication: %v", err)
	}
	if !loaded.IsTaken {
		t.Fatal("expected medication to be taken")
	}
	if loaded.Dosage != "500mg" {
		t.Fatalf("expected dosage to stay 500mg, got %q", loaded.Dosage)
	}
	if !loaded.UpdatedAt.After(stale) {
		t.Fatalf("expected updated_at to move past %s, got %s", stale, loaded.UpdatedAt)
	}

	if _, err := repositories.Medications.FindByIDForUser(medication.ID, user.ID+1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected other user lookup to miss, got %v", err)
	}
}

func TestEmergencyContactRepositoryKeepsSinglePrimary(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "contacts@example.com")

	first := models.EmergencyContact{UserID: user.ID, Name: "Rafi", Phone: "+8801711000000", IsPrimary: true}
	if err := repositories.EmergencyContacts.Save(&first); err != nil {
		t.Fatalf("save first contact: %v", err)
	}
	second := models.EmergencyContact{UserID: user.ID, Name: "Nadia", Phone: "+8801711000001", IsPrimary: true}
	if err := repositories.EmergencyContacts.Save(&second); err != nil {
		t.Fatalf("save second contact: %v", err)
	}

	contacts, err := repositories.EmergencyContacts.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	primaryCount := 0
	for _, contact := range contacts {
		if contact.IsPrimary {
			primaryCount++
		}
	}
	if primaryCount != 1 {
		t.Fatalf("expected exactly one primary contact, got %d", primaryCount)
	}
	if contacts[0].ID != second.ID {
		t.Fatalf("expected newest primary listed first, got %s", contacts[0].Name)
	}
}

func TestDeleteAccountRemovesRelatedRows(t *testing.T) {
	repositories := newTestRepositories(t)
	user := createTestUser(t, repositories, "delete@example.com")

	profile := models.DefaultProfile(user.ID, "Delete Me")
	if err := repositories.Profiles.Create(&profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	medication := models.Medication{UserID: user.ID, Name: "Aspirin"}
	if err := repositories.Medications.Create(&medication); err != nil {
		t.Fatalf("create medication: %v", err)
	}

	if err := repositories.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := repositories.Users.FindByID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected user to be deleted, got %v", err)
	}
	medications, err := repositories.Medications.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list medications: %v", err)
	}
	if len(medications) != 0 {
		t.Fatalf("expected medications to be deleted, got %d", len(medications))
	}
}
