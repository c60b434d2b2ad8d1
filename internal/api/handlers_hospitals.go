package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetNearbyHospitals(c *fiber.Ctx) error {
	latitude, err := parseFloatQuery(c, "lat")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid coordinates")
	}
	longitude, err := parseFloatQuery(c, "lng")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid coordinates")
	}

	handler.ensureDependencies()
	hospitals, err := handler.hospitalService.Nearby(latitude, longitude)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to locate hospitals")
	}
	return c.JSON(fiber.Map{
		"location":  fiber.Map{"lat": latitude, "lng": longitude},
		"hospitals": hospitals,
	})
}
