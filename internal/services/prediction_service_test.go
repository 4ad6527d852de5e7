package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/phasecast/internal/models"
)

type stubProfileRepo struct {
	users map[uint]models.User
}

func (repo *stubProfileRepo) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

func (repo *stubProfileRepo) UpdateCycleProfile(userID uint, lastPeriodStart time.Time, cycleLength int, periodLength int, telegramChatID int64) error {
	user, ok := repo.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.LastPeriodStart = &lastPeriodStart
	user.CycleLength = cycleLength
	user.PeriodLength = periodLength
	user.TelegramChatID = telegramChatID
	repo.users[userID] = user
	return nil
}

func TestValidateCycleProfile(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	valid := CycleProfileInput{CycleLength: 28, PeriodLength: 5, LastPeriodStartRaw: " 2024-03-01 ", TelegramChatID: 42}

	update, err := ValidateCycleProfile(valid, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", FormatISODate(update.LastPeriodStart))
	assert.Equal(t, int64(42), update.TelegramChatID)

	cases := []struct {
		name   string
		mutate func(*CycleProfileInput)
		want   error
	}{
		{"cycle too short", func(in *CycleProfileInput) { in.CycleLength = 14 }, ErrProfileCycleLengthOutOfRange},
		{"cycle too long", func(in *CycleProfileInput) { in.CycleLength = 91 }, ErrProfileCycleLengthOutOfRange},
		{"period zero", func(in *CycleProfileInput) { in.PeriodLength = 0 }, ErrProfilePeriodLengthOutOfRange},
		{"period too long", func(in *CycleProfileInput) { in.PeriodLength = 15 }, ErrProfilePeriodLengthOutOfRange},
		{"shortest cycle longest period", func(in *CycleProfileInput) { in.CycleLength, in.PeriodLength = 15, 14 }, nil},
		{"negative chat", func(in *CycleProfileInput) { in.TelegramChatID = -1 }, ErrProfileTelegramChatInvalid},
		{"bad date", func(in *CycleProfileInput) { in.LastPeriodStartRaw = "03/01/2024" }, ErrProfileStartDateInvalid},
		{"future date", func(in *CycleProfileInput) { in.LastPeriodStartRaw = "2024-03-11" }, ErrProfileStartDateInvalid},
		{"too old", func(in *CycleProfileInput) { in.LastPeriodStartRaw = "2023-03-09" }, ErrProfileStartDateInvalid},
		{"one year back", func(in *CycleProfileInput) { in.LastPeriodStartRaw = "2023-03-10" }, nil},
		{"today", func(in *CycleProfileInput) { in.LastPeriodStartRaw = "2024-03-10" }, nil},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			input := valid
			testCase.mutate(&input)
			_, err := ValidateCycleProfile(input, now, time.UTC)
			if testCase.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.want)
		})
	}
}

func TestValidateCycleProfileUsesLocationForToday(t *testing.T) {
	location, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on Mar 10 is already Mar 11 in Tokyo.
	now := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC)
	_, err = ValidateCycleProfile(CycleProfileInput{CycleLength: 28, PeriodLength: 5, LastPeriodStartRaw: "2024-03-11"}, now, location)
	assert.NoError(t, err)
}

func TestPredictionServicePredictForUser(t *testing.T) {
	repo := &stubProfileRepo{users: map[uint]models.User{
		1: {ID: 1, CycleLength: 28, PeriodLength: 5},
	}}
	service := NewPredictionService(repo, time.UTC)

	_, err := service.PredictForUser(1, time.Now())
	assert.ErrorIs(t, err, ErrCycleProfileMissing)

	_, err = service.PredictForUser(99, time.Now())
	assert.Error(t, err)

	require.NoError(t, service.UpdateProfile(1, CycleProfileUpdate{
		CycleLength:     28,
		PeriodLength:    5,
		LastPeriodStart: mustParseDay(t, "2024-01-01"),
		TelegramChatID:  7,
	}))

	result, err := service.PredictForUser(1, time.Date(2024, time.January, 13, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, PhaseOvulation, result.CurrentPhase.Name)
	assert.Equal(t, "2024-01-29", FormatISODate(result.NextPeriodStart))
	assert.Equal(t, 16, result.DaysUntilNextPeriod)
	assert.Equal(t, int64(7), repo.users[1].TelegramChatID)
}

func TestCycleDataFromUserKeepsCalendarDay(t *testing.T) {
	location, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	stored := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	data, err := CycleDataFromUser(models.User{LastPeriodStart: &stored, CycleLength: 28, PeriodLength: 5}, location)
	require.NoError(t, err)
	assert.Equal(t, location, data.LastPeriodStart.Location())
	assert.Equal(t, 1, data.LastPeriodStart.Day())
}
