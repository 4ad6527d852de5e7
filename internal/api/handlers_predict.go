package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/phasecast/internal/services"
)

type predictInput struct {
	LastPeriodStart string `json:"last_period_start"`
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	Today           string `json:"today"`
}

// Predict runs the engine on the submitted values without touching storage.
// Lengths are only required to be positive here.
func (handler *Handler) Predict(c *fiber.Ctx) error {
	var input predictInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	start, err := services.ParseISODate(strings.TrimSpace(input.LastPeriodStart), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid last_period_start")
	}

	today := services.StartOfDay(handler.now(), handler.location)
	if raw := strings.TrimSpace(input.Today); raw != "" {
		today, err = services.ParseISODate(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid today")
		}
	}

	result, err := services.PredictCycle(services.CycleData{
		LastPeriodStart: start,
		CycleLength:     input.CycleLength,
		PeriodLength:    input.PeriodLength,
	}, today)
	if errors.Is(err, services.ErrInvalidCycleInput) {
		return apiError(c, fiber.StatusUnprocessableEntity, "cycle_length and period_length must be positive")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to predict cycle")
	}

	return c.JSON(newPredictionResponse(result, today))
}
