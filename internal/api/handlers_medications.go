package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/services"
)

func (handler *Handler) GetMedications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	medications, err := handler.medicationService.ListMedications(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load medications")
	}
	return c.JSON(medications)
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.MedicationInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	medication, err := handler.medicationService.CreateMedication(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save medication")
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	input := services.MedicationInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	medication, err := handler.medicationService.UpdateMedication(user.ID, id, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save medication")
	}
	return c.JSON(medication)
}

func (handler *Handler) ToggleMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	handler.ensureDependencies()
	medication, err := handler.medicationService.ToggleTaken(user.ID, id)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save medication")
	}
	return c.JSON(medication)
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	handler.ensureDependencies()
	if err := handler.medicationService.DeleteMedication(user.ID, id); err != nil {
		return handler.respondServiceError(c, err, "failed to delete medication")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetAdherence(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	summary, err := handler.medicationService.Adherence(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load medications")
	}
	return c.JSON(summary)
}
