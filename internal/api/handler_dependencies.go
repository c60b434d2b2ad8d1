package api

import (
	"github.com/zamanlabs/medicare/internal/db"
	"github.com/zamanlabs/medicare/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.buildServices()
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}
	handler.buildServices()
}

func (handler *Handler) buildServices() {
	repositories := handler.repositories

	if handler.authService == nil {
		handler.authService = services.NewAuthService(repositories.Users, handler.clock)
	}
	if handler.accountService == nil {
		handler.accountService = services.NewAccountService(repositories.Users)
	}
	if handler.setupService == nil {
		handler.setupService = services.NewSetupService(repositories.Users)
	}
	if handler.wellnessService == nil {
		handler.wellnessService = services.NewWellnessService(
			repositories.Symptoms,
			repositories.Medications,
			repositories.Profiles,
			handler.doctorFeedback,
			handler.clock,
		)
	}
	if handler.wellnessHub == nil {
		handler.wellnessHub = services.NewWellnessHub(handler.wellnessService, handler.logger)
	}
	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(repositories.Profiles, handler.wellnessHub)
	}
	if handler.symptomService == nil {
		handler.symptomService = services.NewSymptomService(repositories.Symptoms, handler.wellnessHub, handler.clock)
	}
	if handler.medicationService == nil {
		handler.medicationService = services.NewMedicationService(repositories.Medications, handler.wellnessHub)
	}
	if handler.contactService == nil {
		handler.contactService = services.NewEmergencyContactService(repositories.EmergencyContacts)
	}
	if handler.exportService == nil {
		handler.exportService = services.NewExportService(
			handler.profileService,
			handler.symptomService,
			handler.medicationService,
			handler.contactService,
			handler.wellnessService,
			handler.clock,
		)
	}
	if handler.hospitalService == nil {
		handler.hospitalService = services.NewHospitalService()
	}
}
