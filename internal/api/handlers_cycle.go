package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/phasecast/internal/services"
)

type cycleProfileInput struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start"`
	TelegramChatID  int64  `json:"telegram_chat_id"`
}

type cycleProfileResponse struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start,omitempty"`
	TelegramChatID  int64  `json:"telegram_chat_id"`
}

func profileErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrProfileCycleLengthOutOfRange):
		return "cycle length must be between 15 and 90"
	case errors.Is(err, services.ErrProfilePeriodLengthOutOfRange):
		return "period length must be between 1 and 14"
	case errors.Is(err, services.ErrProfilePeriodLengthIncompatible):
		return "period length must be shorter than cycle length"
	case errors.Is(err, services.ErrProfileStartDateInvalid):
		return "invalid last period start date"
	case errors.Is(err, services.ErrProfileTelegramChatInvalid):
		return "invalid telegram chat id"
	default:
		return ""
	}
}

func (handler *Handler) GetCycleProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	response := cycleProfileResponse{
		CycleLength:    user.CycleLength,
		PeriodLength:   user.PeriodLength,
		TelegramChatID: user.TelegramChatID,
	}
	if user.HasCycleProfile() {
		data, err := services.CycleDataFromUser(*user, handler.location)
		if err == nil {
			response.LastPeriodStart = services.FormatISODate(data.LastPeriodStart)
		}
	}
	return c.JSON(response)
}

func (handler *Handler) UpdateCycleProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input cycleProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	update, err := services.ValidateCycleProfile(services.CycleProfileInput{
		CycleLength:        input.CycleLength,
		PeriodLength:       input.PeriodLength,
		LastPeriodStartRaw: input.LastPeriodStart,
		TelegramChatID:     input.TelegramChatID,
	}, handler.now(), handler.location)
	if err != nil {
		if message := profileErrorMessage(err); message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.predictions.UpdateProfile(user.ID, update); err != nil {
		handler.log.WithError(err).WithField("user_id", user.ID).Error("update cycle profile failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to update cycle profile")
	}

	return c.JSON(cycleProfileResponse{
		CycleLength:     update.CycleLength,
		PeriodLength:    update.PeriodLength,
		LastPeriodStart: services.FormatISODate(update.LastPeriodStart),
		TelegramChatID:  update.TelegramChatID,
	})
}

func (handler *Handler) predictForCurrentUser(c *fiber.Ctx) (services.PredictionResult, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		return services.PredictionResult{}, false, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := handler.predictions.PredictForProfile(*user, handler.now())
	switch {
	case errors.Is(err, services.ErrCycleProfileMissing):
		return services.PredictionResult{}, false, apiError(c, fiber.StatusNotFound, "cycle profile not set")
	case errors.Is(err, services.ErrInvalidCycleInput):
		return services.PredictionResult{}, false, apiError(c, fiber.StatusUnprocessableEntity, "stored cycle profile is invalid")
	case err != nil:
		handler.log.WithError(err).WithField("user_id", user.ID).Error("predict cycle failed")
		return services.PredictionResult{}, false, apiError(c, fiber.StatusInternalServerError, "failed to predict cycle")
	}
	return result, true, nil
}

func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	result, ok, err := handler.predictForCurrentUser(c)
	if !ok {
		return err
	}
	return c.JSON(newPredictionResponse(result, services.StartOfDay(handler.now(), handler.location)))
}

func (handler *Handler) GetCalendarFeed(c *fiber.Ctx) error {
	result, ok, err := handler.predictForCurrentUser(c)
	if !ok {
		return err
	}

	feed, err := services.BuildCalendarFeed(result, handler.now())
	if err != nil {
		handler.log.WithError(err).Error("build calendar feed failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to build calendar")
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cycle.ics"`)
	return c.Send(feed)
}
