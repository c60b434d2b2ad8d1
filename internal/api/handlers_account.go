package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type updateAccountInput struct {
	DisplayName string `json:"display_name"`
}

type deleteAccountInput struct {
	Password string `json:"password"`
}

func (handler *Handler) UpdateAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := updateAccountInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	updated, err := handler.accountService.UpdateDisplayName(*user, input.DisplayName)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update account")
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := deleteAccountInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	if err := handler.accountService.DeleteAccount(*user, input.Password); err != nil {
		return handler.respondServiceError(c, err, "failed to delete account")
	}

	handler.logger.Info("account deleted", zap.Uint("user_id", user.ID))
	return c.JSON(fiber.Map{"ok": true})
}
