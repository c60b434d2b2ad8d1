package api

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/services"
)

const (
	exportFilePrefix = "medicare-export"
	mimeXLSX         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	payload, err := handler.buildExportPayload(c)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}
	return c.JSON(payload.Summary())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	payload, err := handler.buildExportPayload(c)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.ExportFileName(exportFilePrefix, payload.ExportedAt.In(handler.location), "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	payload, err := handler.buildExportPayload(c)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	workbook, err := services.BuildWorkbook(payload)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, mimeXLSX, services.ExportFileName(exportFilePrefix, payload.ExportedAt.In(handler.location), "xlsx"))
	return c.Send(workbook)
}

func (handler *Handler) buildExportPayload(c *fiber.Ctx) (services.ExportPayload, error) {
	user, ok := currentUser(c)
	if !ok {
		return services.ExportPayload{}, fiber.ErrUnauthorized
	}
	handler.ensureDependencies()
	return handler.exportService.BuildPayload(user.ID)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
