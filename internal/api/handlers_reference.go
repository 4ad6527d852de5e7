package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/phasecast/internal/services"
)

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		return c.JSON(handler.reference.Symptoms())
	}

	symptoms, err := handler.reference.SymptomsByCategory(category)
	if errors.Is(err, services.ErrInvalidSymptomCategory) {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom category")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}
	return c.JSON(symptoms)
}

func (handler *Handler) GetSymptom(c *fiber.Ctx) error {
	symptom, err := handler.reference.Symptom(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom not found")
	}
	return c.JSON(symptom)
}

func (handler *Handler) ListAdvice(c *fiber.Ctx) error {
	return c.JSON(handler.reference.AdviceCategories())
}

func (handler *Handler) GetAdvice(c *fiber.Ctx) error {
	category, err := handler.reference.AdviceCategory(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "advice category not found")
	}
	return c.JSON(category)
}

func (handler *Handler) ListClinics(c *fiber.Ctx) error {
	return c.JSON(handler.reference.Clinics())
}

func (handler *Handler) GetClinic(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid clinic id")
	}
	clinic, err := handler.reference.Clinic(id)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "clinic not found")
	}
	return c.JSON(clinic)
}
