package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/services"
)

func (handler *Handler) GetEmergencyContacts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	contacts, err := handler.contactService.ListContacts(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load emergency contacts")
	}
	return c.JSON(contacts)
}

func (handler *Handler) CreateEmergencyContact(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.EmergencyContactInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	contact, err := handler.contactService.CreateContact(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save emergency contact")
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (handler *Handler) UpdateEmergencyContact(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	input := services.EmergencyContactInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	contact, err := handler.contactService.UpdateContact(user.ID, id, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save emergency contact")
	}
	return c.JSON(contact)
}

func (handler *Handler) DeleteEmergencyContact(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	handler.ensureDependencies()
	if err := handler.contactService.DeleteContact(user.ID, id); err != nil {
		return handler.respondServiceError(c, err, "failed to delete emergency contact")
	}
	return c.JSON(fiber.Map{"ok": true})
}
