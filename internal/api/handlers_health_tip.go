package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetHealthTip(c *fiber.Ctx) error {
	tip := handler.healthTipService.Current(c.UserContext())
	return c.JSON(tip)
}
