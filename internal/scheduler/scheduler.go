package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/logger"
)

const defaultJobTimeout = 5 * time.Minute

// ReminderJob is the unit of work run on every tick.
type ReminderJob interface {
	Run(ctx context.Context) (int, error)
}

type ReminderScheduler struct {
	cronEngine *cron.Cron
	job        ReminderJob
	spec       string
	timeout    time.Duration
	log        *logrus.Entry
}

func NewReminderScheduler(job ReminderJob, spec string, location *time.Location, log logrus.FieldLogger) *ReminderScheduler {
	if location == nil {
		location = time.UTC
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		job:        job,
		spec:       spec,
		timeout:    defaultJobTimeout,
		log:        logger.Component(log, "scheduler"),
	}
}

// Start registers the reminder job and starts the cron engine. An invalid
// spec is returned as an error and nothing is started.
func (s *ReminderScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("add reminder job %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.log.WithField("spec", s.spec).Info("reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.job.Run(ctx)
	if err != nil {
		s.log.WithError(err).Error("reminder run failed")
		return
	}
	s.log.WithField("sent", sent).Info("reminder run finished")
}

// Stop halts scheduling and waits for a running job until ctx expires.
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	done := s.cronEngine.Stop()
	select {
	case <-done.Done():
		s.log.Info("reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
