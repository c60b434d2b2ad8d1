package api

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/models"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
)

type registerInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	handler.ensureDependencies()
	status, err := handler.setupService.Status()
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load setup status")
	}
	return c.JSON(status)
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(services.RegisterInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create account")
	}

	handler.logger.Info("account registered", zap.Uint("user_id", user.ID))
	return handler.respondWithToken(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.clock.Now()
	input := loginInput{}
	if err := parseJSONBody(c, &input); err != nil {
		handler.loginLimiter.recordFailure(loginLimiterKey(c, ""), now)
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginLimiterKey(c, input.Email)
	if blocked, retryAfter := handler.loginLimiter.blocked(limiterKey, now); blocked {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return handler.respondServiceError(c, err, "failed to sign in")
	}

	handler.loginLimiter.clear(limiterKey)
	return handler.respondWithToken(c, fiber.StatusOK, user)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

// Logout is stateless: the client drops its token.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return handler.respondServiceError(c, err, "failed to update password")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	token, expiresAt, err := handler.tokens.Issue(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create session")
	}
	return c.Status(status).JSON(authResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}
