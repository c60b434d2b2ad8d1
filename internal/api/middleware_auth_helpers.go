package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/models"
)

const bearerScheme = "bearer"

var errMissingBearerToken = errors.New("missing bearer token")

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", errMissingBearerToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingBearerToken
	}
	return token, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := handler.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
