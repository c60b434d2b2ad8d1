package db

import "gorm.io/gorm"

type Repositories struct {
	Users             *UserRepository
	Profiles          *ProfileRepository
	Symptoms          *SymptomRepository
	Medications       *MedicationRepository
	EmergencyContacts *EmergencyContactRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:             NewUserRepository(database),
		Profiles:          NewProfileRepository(database),
		Symptoms:          NewSymptomRepository(database),
		Medications:       NewMedicationRepository(database),
		EmergencyContacts: NewEmergencyContactRepository(database),
	}
}
