package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/models"
)

const maxRememberedReminders = 500

type ReminderKind string

const (
	ReminderPeriod    ReminderKind = "period"
	ReminderFertility ReminderKind = "fertility"
)

type ReminderSender interface {
	Send(ctx context.Context, chatID int64, message string) error
}

type ReminderRecipientRepository interface {
	ListReminderRecipients() ([]models.User, error)
}

type ReminderSettings struct {
	PeriodReminderDays int
	NotifyFertility    bool
	Location           *time.Location
}

type ReminderService struct {
	users    ReminderRecipientRepository
	sender   ReminderSender
	settings ReminderSettings
	log      logrus.FieldLogger
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderService(users ReminderRecipientRepository, sender ReminderSender, settings ReminderSettings, log logrus.FieldLogger) *ReminderService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.PeriodReminderDays < 0 {
		settings.PeriodReminderDays = 0
	}
	if log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		log = discard
	}
	return &ReminderService{
		users:    users,
		sender:   sender,
		settings: settings,
		log:      log,
		now:      time.Now,
		sent:     make(map[string]time.Time),
	}
}

// Run checks every recipient once and returns how many reminders were sent.
// Failures for one user are logged and do not stop the rest.
func (service *ReminderService) Run(ctx context.Context) (int, error) {
	recipients, err := service.users.ListReminderRecipients()
	if err != nil {
		return 0, fmt.Errorf("list reminder recipients: %w", err)
	}

	today := StartOfDay(service.now(), service.settings.Location)
	sent := 0
	for _, user := range recipients {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		sent += service.remindUser(ctx, user, today)
	}
	return sent, nil
}

func (service *ReminderService) remindUser(ctx context.Context, user models.User, today time.Time) int {
	entry := service.log.WithField("user_id", user.ID)

	data, err := CycleDataFromUser(user, service.settings.Location)
	if err != nil {
		return 0
	}
	result, err := PredictCycle(data, today)
	if err != nil {
		entry.WithError(err).Warn("skip reminder for invalid cycle profile")
		return 0
	}

	sent := 0
	if DaysBetween(result.NextPeriodStart, today) == service.settings.PeriodReminderDays {
		message := PeriodReminderMessage(service.settings.PeriodReminderDays, result.NextPeriodStart)
		if service.deliver(ctx, entry, user, ReminderPeriod, today, message) {
			sent++
		}
	}
	if service.settings.NotifyFertility && sameDay(today, result.FertileWindowStart) {
		message := FertilityReminderMessage(result.FertileWindowStart)
		if service.deliver(ctx, entry, user, ReminderFertility, today, message) {
			sent++
		}
	}
	return sent
}

func (service *ReminderService) deliver(ctx context.Context, entry *logrus.Entry, user models.User, kind ReminderKind, today time.Time, message string) bool {
	key := fmt.Sprintf("%s:%d:%s", kind, user.ID, FormatISODate(today))
	if !service.shouldSend(key, today) {
		return false
	}
	if err := service.sender.Send(ctx, user.TelegramChatID, message); err != nil {
		service.forget(key)
		entry.WithError(err).WithField("kind", kind).Error("send reminder failed")
		return false
	}
	entry.WithField("kind", kind).Info("reminder sent")
	return true
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sent[key]; ok && sameDay(sentOn, today) {
		return false
	}

	service.sent[key] = today
	if len(service.sent) > maxRememberedReminders {
		service.sent = map[string]time.Time{key: today}
	}
	return true
}

func (service *ReminderService) forget(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sent, key)
}

func PeriodReminderMessage(days int, nextPeriodStart time.Time) string {
	if days == 0 {
		return fmt.Sprintf("Reminder: your predicted period starts today (%s).", FormatDisplayDate(nextPeriodStart))
	}
	return fmt.Sprintf("Reminder: your predicted period starts in %d day(s) on %s.", days, FormatDisplayDate(nextPeriodStart))
}

func FertilityReminderMessage(fertileWindowStart time.Time) string {
	return fmt.Sprintf("Reminder: your fertile window starts today (%s).", FormatDisplayDate(fertileWindowStart))
}
