package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/api"
	"github.com/terraincognita07/phasecast/internal/cli"
	"github.com/terraincognita07/phasecast/internal/config"
	"github.com/terraincognita07/phasecast/internal/db"
	"github.com/terraincognita07/phasecast/internal/logger"
	"github.com/terraincognita07/phasecast/internal/notify"
	"github.com/terraincognita07/phasecast/internal/scheduler"
	"github.com/terraincognita07/phasecast/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "phasecast: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "predict":
		location := time.UTC
		if name := os.Getenv("TZ"); name != "" {
			if loaded, err := time.LoadLocation(name); err == nil {
				location = loaded
			}
		}
		return cli.RunPredictCommand(args, out, time.Now(), location)
	case "reset-password":
		if len(args) != 1 {
			return errors.New("usage: phasecast reset-password <email>")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return cli.RunResetPasswordCommand(cfg.DBPath, args[0], out, logger.New(cfg.LogLevel, cfg.Environment))
	case "serve":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return serve(cfg)
	default:
		return fmt.Errorf("unknown command %q (expected serve, predict or reset-password)", command)
	}
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg.LogLevel, cfg.Environment)
	if cfg.LocationWarning != "" {
		log.Warn(cfg.LocationWarning)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repos := db.NewRepositories(database)

	predictions := services.NewPredictionService(repos.Users, cfg.Location)
	handler, err := api.NewHandler(api.HandlerOptions{
		Auth:         services.NewAuthService(repos.Users),
		Predictions:  predictions,
		Reference:    services.NewReferenceService(),
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	sender, err := notify.NewSender(cfg.TelegramBotToken, log)
	if err != nil {
		return fmt.Errorf("notifier init failed: %w", err)
	}
	reminders := services.NewReminderService(repos.Users, sender, services.ReminderSettings{
		PeriodReminderDays: cfg.PeriodReminderDays,
		NotifyFertility:    cfg.NotifyFertility,
		Location:           cfg.Location,
	}, logger.Component(log, "reminders"))
	reminderScheduler := scheduler.NewReminderScheduler(reminders, cfg.ReminderCron, cfg.Location, log)
	if err := reminderScheduler.Start(); err != nil {
		return err
	}

	app := newApp(handler, log)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := reminderScheduler.Stop(shutdownCtx); err != nil {
			log.WithError(err).Warn("reminder scheduler stop timed out")
		}
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("phasecast listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "phasecast",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: log.Out}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}
