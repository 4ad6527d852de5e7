package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/phasecast/internal/models"
)

var (
	ErrReferenceNotFound      = errors.New("reference entry not found")
	ErrInvalidSymptomCategory = errors.New("invalid symptom category")
)

// ReferenceService serves the static symptom, advice and clinic catalogs.
// Every call returns a fresh copy so callers may modify the result.
type ReferenceService struct {
	symptoms []models.SymptomOption
	advice   []models.AdviceCategory
	clinics  []models.HealthcareLocation
}

func NewReferenceService() *ReferenceService {
	return &ReferenceService{
		symptoms: models.DefaultSymptomOptions(),
		advice:   models.DefaultAdviceCategories(),
		clinics:  models.DefaultHealthcareLocations(),
	}
}

func (service *ReferenceService) Symptoms() []models.SymptomOption {
	return append([]models.SymptomOption(nil), service.symptoms...)
}

func (service *ReferenceService) SymptomsByCategory(category string) ([]models.SymptomOption, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case models.SymptomCategoryPhysical, models.SymptomCategoryEmotional, models.SymptomCategoryFlow:
	default:
		return nil, ErrInvalidSymptomCategory
	}

	filtered := make([]models.SymptomOption, 0, len(service.symptoms))
	for _, symptom := range service.symptoms {
		if symptom.Category == category {
			filtered = append(filtered, symptom)
		}
	}
	return filtered, nil
}

func (service *ReferenceService) Symptom(id string) (models.SymptomOption, error) {
	for _, symptom := range service.symptoms {
		if symptom.ID == id {
			return symptom, nil
		}
	}
	return models.SymptomOption{}, ErrReferenceNotFound
}

func (service *ReferenceService) AdviceCategories() []models.AdviceCategory {
	return append([]models.AdviceCategory(nil), service.advice...)
}

func (service *ReferenceService) AdviceCategory(id string) (models.AdviceCategory, error) {
	for _, category := range service.advice {
		if category.ID == id {
			return category, nil
		}
	}
	return models.AdviceCategory{}, ErrReferenceNotFound
}

func (service *ReferenceService) Clinics() []models.HealthcareLocation {
	return append([]models.HealthcareLocation(nil), service.clinics...)
}

func (service *ReferenceService) Clinic(id int) (models.HealthcareLocation, error) {
	for _, clinic := range service.clinics {
		if clinic.ID == id {
			return clinic, nil
		}
	}
	return models.HealthcareLocation{}, ErrReferenceNotFound
}
