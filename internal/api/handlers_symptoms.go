package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/services"
)

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	symptoms, err := handler.symptomService.ListSymptoms(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load symptoms")
	}
	return c.JSON(symptoms)
}

func (handler *Handler) AddSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.SymptomInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	symptom, err := handler.symptomService.AddSymptom(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to log symptom")
	}
	return c.Status(fiber.StatusCreated).JSON(symptom)
}

func (handler *Handler) RemoveSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	handler.ensureDependencies()
	if err := handler.symptomService.RemoveSymptom(user.ID, id); err != nil {
		return handler.respondServiceError(c, err, "failed to delete symptom")
	}
	return c.JSON(fiber.Map{"ok": true})
}
