package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/phasecast/internal/models"
)

const (
	MinProfileCycleLength  = 15
	MaxProfileCycleLength  = 90
	MinProfilePeriodLength = 1
	MaxProfilePeriodLength = 14
)

var (
	ErrProfileCycleLengthOutOfRange    = errors.New("cycle length out of range")
	ErrProfilePeriodLengthOutOfRange   = errors.New("period length out of range")
	ErrProfilePeriodLengthIncompatible = errors.New("period length incompatible with cycle length")
	ErrProfileStartDateInvalid         = errors.New("last period start date invalid")
	ErrProfileTelegramChatInvalid      = errors.New("telegram chat id invalid")
	ErrCycleProfileMissing             = errors.New("cycle profile missing")
)

type CycleProfileInput struct {
	CycleLength        int
	PeriodLength       int
	LastPeriodStartRaw string
	TelegramChatID     int64
}

type CycleProfileUpdate struct {
	CycleLength     int
	PeriodLength    int
	LastPeriodStart time.Time
	TelegramChatID  int64
}

type CycleProfileRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateCycleProfile(userID uint, lastPeriodStart time.Time, cycleLength int, periodLength int, telegramChatID int64) error
}

type PredictionService struct {
	users    CycleProfileRepository
	location *time.Location
}

func NewPredictionService(users CycleProfileRepository, location *time.Location) *PredictionService {
	if location == nil {
		location = time.UTC
	}
	return &PredictionService{users: users, location: location}
}

func (service *PredictionService) Location() *time.Location {
	return service.location
}

// ValidateCycleProfile applies the stored-profile rules, which are stricter
// than what PredictCycle accepts.
func ValidateCycleProfile(input CycleProfileInput, now time.Time, location *time.Location) (CycleProfileUpdate, error) {
	if input.CycleLength < MinProfileCycleLength || input.CycleLength > MaxProfileCycleLength {
		return CycleProfileUpdate{}, ErrProfileCycleLengthOutOfRange
	}
	if input.PeriodLength < MinProfilePeriodLength || input.PeriodLength > MaxProfilePeriodLength {
		return CycleProfileUpdate{}, ErrProfilePeriodLengthOutOfRange
	}
	if input.PeriodLength >= input.CycleLength {
		return CycleProfileUpdate{}, ErrProfilePeriodLengthIncompatible
	}
	if input.TelegramChatID < 0 {
		return CycleProfileUpdate{}, ErrProfileTelegramChatInvalid
	}

	day, err := ParseISODate(strings.TrimSpace(input.LastPeriodStartRaw), location)
	if err != nil {
		return CycleProfileUpdate{}, ErrProfileStartDateInvalid
	}
	earliest, today := ProfileStartDateBounds(now, location)
	if day.Before(earliest) || day.After(today) {
		return CycleProfileUpdate{}, ErrProfileStartDateInvalid
	}

	return CycleProfileUpdate{
		CycleLength:     input.CycleLength,
		PeriodLength:    input.PeriodLength,
		LastPeriodStart: day,
		TelegramChatID:  input.TelegramChatID,
	}, nil
}

func ProfileStartDateBounds(now time.Time, location *time.Location) (time.Time, time.Time) {
	today := StartOfDay(now, location)
	return today.AddDate(-1, 0, 0), today
}

func (service *PredictionService) UpdateProfile(userID uint, update CycleProfileUpdate) error {
	if err := service.users.UpdateCycleProfile(
		userID,
		update.LastPeriodStart,
		update.CycleLength,
		update.PeriodLength,
		update.TelegramChatID,
	); err != nil {
		return fmt.Errorf("update cycle profile: %w", err)
	}
	return nil
}

func (service *PredictionService) Profile(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// PredictForUser runs the engine on the saved profile with today taken from
// now in the service location.
func (service *PredictionService) PredictForUser(userID uint, now time.Time) (PredictionResult, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return PredictionResult{}, err
	}
	return service.PredictForProfile(user, now)
}

func (service *PredictionService) PredictForProfile(user models.User, now time.Time) (PredictionResult, error) {
	data, err := CycleDataFromUser(user, service.location)
	if err != nil {
		return PredictionResult{}, err
	}
	return PredictCycle(data, StartOfDay(now, service.location))
}

func CycleDataFromUser(user models.User, location *time.Location) (CycleData, error) {
	if !user.HasCycleProfile() {
		return CycleData{}, ErrCycleProfileMissing
	}
	stored := *user.LastPeriodStart
	if location == nil {
		location = time.UTC
	}
	// Dates come back from sqlite as UTC midnight; keep the calendar day.
	start := time.Date(stored.Year(), stored.Month(), stored.Day(), 0, 0, 0, 0, location)
	return CycleData{
		LastPeriodStart: start,
		CycleLength:     user.CycleLength,
		PeriodLength:    user.PeriodLength,
	}, nil
}
