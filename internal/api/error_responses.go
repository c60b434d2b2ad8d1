package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
)

type errorResponse struct {
	target error
	status int
}

// Storage failures are absent on purpose: they fall through to 500.
var serviceErrorResponses = []errorResponse{
	{services.ErrAuthCredentialsInvalid, fiber.StatusBadRequest},
	{services.ErrAuthDisplayNameInvalid, fiber.StatusBadRequest},
	{services.ErrWeakPassword, fiber.StatusBadRequest},
	{services.ErrPasswordChangeInvalidInput, fiber.StatusBadRequest},
	{services.ErrPasswordMismatch, fiber.StatusBadRequest},
	{services.ErrNewPasswordMustDiffer, fiber.StatusBadRequest},
	{services.ErrInvalidCurrentPassword, fiber.StatusUnauthorized},
	{services.ErrAccountPasswordMissing, fiber.StatusBadRequest},
	{services.ErrAccountPasswordInvalid, fiber.StatusUnauthorized},
	{services.ErrEmailAlreadyRegistered, fiber.StatusConflict},
	{services.ErrAuthUserNotFound, fiber.StatusNotFound},

	{services.ErrInvalidProfileName, fiber.StatusBadRequest},
	{services.ErrInvalidProfileAge, fiber.StatusBadRequest},
	{services.ErrInvalidBloodGroup, fiber.StatusBadRequest},
	{services.ErrInvalidProfileGender, fiber.StatusBadRequest},
	{services.ErrInvalidProfileMeasure, fiber.StatusBadRequest},
	{services.ErrInvalidProfileListItem, fiber.StatusBadRequest},
	{services.ErrProfileIndexOutOfRange, fiber.StatusNotFound},
	{services.ErrProfileNotFound, fiber.StatusNotFound},

	{services.ErrInvalidSymptomName, fiber.StatusBadRequest},
	{services.ErrInvalidSymptomSeverity, fiber.StatusBadRequest},
	{services.ErrInvalidSymptomNotes, fiber.StatusBadRequest},
	{services.ErrInvalidSymptomClientID, fiber.StatusBadRequest},
	{services.ErrSymptomAlreadyLogged, fiber.StatusConflict},
	{services.ErrSymptomNotFound, fiber.StatusNotFound},

	{services.ErrInvalidMedicationName, fiber.StatusBadRequest},
	{services.ErrInvalidMedicationField, fiber.StatusBadRequest},
	{services.ErrInvalidMedicationDateRange, fiber.StatusBadRequest},
	{services.ErrMedicationNotFound, fiber.StatusNotFound},

	{services.ErrInvalidContactName, fiber.StatusBadRequest},
	{services.ErrInvalidContactPhone, fiber.StatusBadRequest},
	{services.ErrInvalidContactRelation, fiber.StatusBadRequest},
	{services.ErrEmergencyContactMissing, fiber.StatusNotFound},

	{services.ErrInvalidCoordinates, fiber.StatusBadRequest},
}

// respondServiceError maps a service sentinel to its status and message.
// Anything unmapped is logged and reported with fallback.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, response := range serviceErrorResponses {
		if errors.Is(err, response.target) {
			return apiError(c, response.status, response.target.Error())
		}
	}

	handler.logger.Error(fallback,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("request_id", requestID(c)),
	)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
