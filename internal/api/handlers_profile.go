package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/services"
)

type profileListItemInput struct {
	Value string `json:"value"`
}

// GetProfile answers 404 when the user has none yet; the client then calls
// CreateProfile to get one with defaults.
func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.FetchProfile(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.CreateDefaultProfile(user.ID, user.DisplayName)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create profile")
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) SaveProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.ProfileInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.SaveProfile(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) GetProfileCompletion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	report, err := handler.profileService.Completion(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load profile")
	}
	return c.JSON(report)
}

func (handler *Handler) AddMedicalCondition(c *fiber.Ctx) error {
	handler.ensureDependencies()
	return handler.addProfileListItem(c, handler.profileService.AddMedicalCondition)
}

func (handler *Handler) RemoveMedicalCondition(c *fiber.Ctx) error {
	handler.ensureDependencies()
	return handler.removeProfileListItem(c, handler.profileService.RemoveMedicalCondition)
}

func (handler *Handler) AddAllergy(c *fiber.Ctx) error {
	handler.ensureDependencies()
	return handler.addProfileListItem(c, handler.profileService.AddAllergy)
}

func (handler *Handler) RemoveAllergy(c *fiber.Ctx) error {
	handler.ensureDependencies()
	return handler.removeProfileListItem(c, handler.profileService.RemoveAllergy)
}

func (handler *Handler) addProfileListItem(c *fiber.Ctx, add func(userID uint, value string) (models.Profile, error)) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileListItemInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	profile, err := add(user.ID, input.Value)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) removeProfileListItem(c *fiber.Ctx, remove func(userID uint, index int) (models.Profile, error)) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid index")
	}

	profile, err := remove(user.ID, index)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save profile")
	}
	return c.JSON(profile)
}
