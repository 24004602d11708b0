package api

import (
	"errors"

	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	Name       string `json:"name" form:"name"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type sessionResponse struct {
	Token              string      `json:"token"`
	User               profileView `json:"user"`
	MustChangePassword bool        `json:"must_change_password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(input.Email, input.Password, input.Name, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", logger.MaskEmail(user.Email)))

	return handler.respondSession(c, fiber.StatusCreated, &user, input.RememberMe)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	return handler.respondSession(c, fiber.StatusOK, &user, input.RememberMe)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"user":                 handler.profileView(*user),
		"must_change_password": user.MustChangePassword,
	})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return handler.respondServiceError(c, err)
	}

	user.MustChangePassword = false
	if _, err := handler.issueSession(c, user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) respondSession(c *fiber.Ctx, status int, user *models.User, rememberMe bool) error {
	token, err := handler.issueSession(c, user, rememberMe)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(status).JSON(sessionResponse{
		Token:              token,
		User:               handler.profileView(*user),
		MustChangePassword: user.MustChangePassword,
	})
}
