package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errInvalidInput = errors.New("invalid input")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseJSONBody(c *fiber.Ctx, target any) error {
	if len(c.Body()) == 0 {
		return errInvalidInput
	}
	if err := c.BodyParser(target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errInvalidInput
	}
	return uint(value), nil
}

func parseIndexParam(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errInvalidInput
	}
	return value, nil
}

func parseFloatQuery(c *fiber.Ctx, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, errInvalidInput
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errInvalidInput
	}
	return value, nil
}

// ErrorHandler replies with the same {"error": ...} shape as handlers for
// errors that escape them, such as unknown routes or recovered panics.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberError *fiber.Error
		if errors.As(err, &fiberError) {
			status = fiberError.Code
			message = strings.ToLower(fiberError.Message)
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
		}
		return apiError(c, status, message)
	}
}
