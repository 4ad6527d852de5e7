package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/api"
	"github.com/terraincognita07/phasecast/internal/services"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run([]string{"launch"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunResetPasswordRequiresEmail(t *testing.T) {
	if err := run([]string{"reset-password"}, io.Discard); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestRunPredict(t *testing.T) {
	t.Setenv("TZ", "UTC")

	var out bytes.Buffer
	err := run([]string{"predict", "--start", "2024-01-01", "--cycle", "28", "--period", "5", "--today", "2024-01-02"}, &out)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out.String(), "Current phase:     Menstruation") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestNewAppServesPublicRoutes(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	handler, err := api.NewHandler(api.HandlerOptions{
		Auth:        services.NewAuthService(nil),
		Predictions: services.NewPredictionService(nil, time.UTC),
		Reference:   services.NewReferenceService(),
		SecretKey:   "0123456789abcdef0123456789abcdef",
		Location:    time.UTC,
		Logger:      log,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	app := newApp(handler, log)

	health := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	response, err := app.Test(health, -1)
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", response.StatusCode)
	}

	body := `{"last_period_start":"2024-01-01","cycle_length":28,"period_length":5,"today":"2024-01-13"}`
	predict := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	predict.Header.Set("Content-Type", "application/json")
	predictResponse, err := app.Test(predict, -1)
	if err != nil {
		t.Fatalf("predict request: %v", err)
	}
	defer predictResponse.Body.Close()
	if predictResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /api/predict, got %d", predictResponse.StatusCode)
	}

	payload := map[string]any{}
	if err := json.NewDecoder(predictResponse.Body).Decode(&payload); err != nil {
		t.Fatalf("decode predict response: %v", err)
	}
	if payload["ovulation_date"] != "2024-01-13" {
		t.Fatalf("unexpected ovulation date %v", payload["ovulation_date"])
	}
}
