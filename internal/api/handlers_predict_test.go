package api

import (
	"net/http"
	"testing"
)

func TestPredictReturnsSchedule(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodPost, "/api/predict", map[string]any{
		"last_period_start": "2024-01-01",
		"cycle_length":      28,
		"period_length":     5,
		"today":             "2024-01-20",
	}, "")
	expectStatus(t, response, http.StatusOK)

	var payload predictionResponse
	decodeJSON(t, response.Body, &payload)

	if payload.NextPeriodStart != "2024-01-29" || payload.NextPeriodStartDisplay != "Jan 29, 2024" {
		t.Fatalf("unexpected next period %q / %q", payload.NextPeriodStart, payload.NextPeriodStartDisplay)
	}
	if payload.OvulationDate != "2024-01-13" {
		t.Fatalf("unexpected ovulation date %q", payload.OvulationDate)
	}
	if payload.FertileWindowStart != "2024-01-08" || payload.FertileWindowEnd != "2024-01-14" {
		t.Fatalf("unexpected fertile window %s..%s", payload.FertileWindowStart, payload.FertileWindowEnd)
	}
	if payload.SafeWindowPreOvulation.Start != "2024-01-06" || payload.SafeWindowPreOvulation.End != "2024-01-07" {
		t.Fatalf("unexpected safe pre window %+v", payload.SafeWindowPreOvulation)
	}
	if payload.CurrentPhase.Key != "safe_post_ovulation" {
		t.Fatalf("expected safe post ovulation, got %q", payload.CurrentPhase.Key)
	}
	if payload.DaysUntilNextPeriod != 9 {
		t.Fatalf("expected 9 days until next period, got %d", payload.DaysUntilNextPeriod)
	}
	if len(payload.AllPhases) != 7 || payload.AllPhases[0].Name != "Menstruation" {
		t.Fatalf("unexpected phases %+v", payload.AllPhases)
	}
}

func TestPredictDefaultsTodayToClock(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodPost, "/api/predict", map[string]any{
		"last_period_start": "2024-01-01",
		"cycle_length":      28,
		"period_length":     5,
	}, "")
	expectStatus(t, response, http.StatusOK)

	var payload predictionResponse
	decodeJSON(t, response.Body, &payload)
	if payload.Today != "2024-01-13" || payload.CurrentPhase.Key != "ovulation" {
		t.Fatalf("expected ovulation on clock day, got today=%s phase=%s", payload.Today, payload.CurrentPhase.Key)
	}
}

func TestPredictRejectsNonPositiveLengths(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodPost, "/api/predict", map[string]any{
		"last_period_start": "2024-01-01",
		"cycle_length":      0,
		"period_length":     5,
	}, "")
	expectStatus(t, response, http.StatusUnprocessableEntity)
}

func TestPredictRejectsMalformedDates(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []map[string]any{
		{"last_period_start": "01/01/2024", "cycle_length": 28, "period_length": 5},
		{"last_period_start": "2024-01-01", "cycle_length": 28, "period_length": 5, "today": "tomorrow"},
	} {
		response := env.do(t, http.MethodPost, "/api/predict", payload, "")
		expectStatus(t, response, http.StatusBadRequest)
	}
}

func TestPredictAcceptsDegenerateCycle(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodPost, "/api/predict", map[string]any{
		"last_period_start": "2024-01-01",
		"cycle_length":      10,
		"period_length":     8,
		"today":             "2024-03-01",
	}, "")
	expectStatus(t, response, http.StatusOK)

	var payload predictionResponse
	decodeJSON(t, response.Body, &payload)
	if payload.CurrentPhase.Key != "luteal" || payload.DaysUntilNextPeriod != 0 {
		t.Fatalf("expected luteal fallback with zero countdown, got %s/%d", payload.CurrentPhase.Key, payload.DaysUntilNextPeriod)
	}
}
