package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/phasecast/internal/models"
	"github.com/terraincognita07/phasecast/internal/services"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type userResponse struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"must_change_password"`
	HasCycleProfile    bool   `json:"has_cycle_profile"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		MustChangePassword: user.MustChangePassword,
		HasCycleProfile:    user.HasCycleProfile(),
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Register(input.Email, input.Password, handler.now())
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid email or password")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrAuthEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case err != nil:
		handler.log.WithError(err).Error("register user failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.startSession(c, &user); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": newUserResponse(&user)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	limiterKey := loginLimiterKey(c, input.Email)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.auth.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		handler.log.WithError(err).Error("authenticate user failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.startSession(c, &user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": newUserResponse(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.auth.ChangePassword(*user, input.CurrentPassword, input.NewPassword)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case err != nil:
		handler.log.WithError(err).WithField("user_id", user.ID).Error("change password failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// startSession issues a token, stores it in the session cookie and echoes it
// in the Authorization response header for API clients.
func (handler *Handler) startSession(c *fiber.Ctx, user *models.User) error {
	now := handler.now()
	token, err := handler.buildToken(user, now, defaultAuthTokenTTL)
	if err != nil {
		handler.log.WithError(err).Error("sign auth token failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token, now.Add(defaultAuthTokenTTL))
	c.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return nil
}
