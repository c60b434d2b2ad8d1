package api

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
)

const wellnessEventName = "wellness"

func (handler *Handler) GetWellness(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	report, err := handler.wellnessService.Compute(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to compute wellness")
	}
	return c.JSON(report)
}

// StreamWellness sends the current report as a server-sent event, then a
// fresh one after every store change and on each refresh tick. The hub
// subscription is released when the client goes away.
func (handler *Handler) StreamWellness(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	initial, err := handler.wellnessService.Compute(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to compute wellness")
	}

	userID := user.ID
	updates, cancel := handler.wellnessHub.Subscribe(userID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		handler.streamWellnessEvents(w, userID, initial, updates)
	}))
	return nil
}

func (handler *Handler) streamWellnessEvents(w *bufio.Writer, userID uint, initial services.WellnessReport, updates <-chan services.WellnessReport) {
	if err := writeWellnessEvent(w, initial); err != nil {
		return
	}

	ticker := handler.clock.NewTicker(handler.streamRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-handler.shutdown:
			return
		case report, open := <-updates:
			if !open {
				return
			}
			if err := writeWellnessEvent(w, report); err != nil {
				return
			}
		case <-ticker.C():
			report, err := handler.wellnessService.Compute(userID)
			if err != nil {
				handler.logger.Warn("wellness stream refresh failed", zap.Uint("user_id", userID), zap.Error(err))
				continue
			}
			if err := writeWellnessEvent(w, report); err != nil {
				return
			}
		}
	}
}

// writeWellnessEvent flushes immediately; a flush error means the client
// disconnected.
func writeWellnessEvent(w *bufio.Writer, report services.WellnessReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", wellnessEventName, payload); err != nil {
		return err
	}
	return w.Flush()
}
