package api

import (
	"time"

	"github.com/terraincognita07/phasecast/internal/services"
)

type spanResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type phaseResponse struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartDisplay string `json:"start_display"`
	EndDisplay   string `json:"end_display"`
	Description  string `json:"description"`
	Color        string `json:"color"`
}

type predictionResponse struct {
	Today                   string          `json:"today"`
	NextPeriodStart         string          `json:"next_period_start"`
	NextPeriodStartDisplay  string          `json:"next_period_start_display"`
	OvulationDate           string          `json:"ovulation_date"`
	OvulationDateDisplay    string          `json:"ovulation_date_display"`
	FertileWindowStart      string          `json:"fertile_window_start"`
	FertileWindowEnd        string          `json:"fertile_window_end"`
	SafeWindowPreOvulation  spanResponse    `json:"safe_window_pre_ovulation"`
	SafeWindowPostOvulation spanResponse    `json:"safe_window_post_ovulation"`
	CurrentPhase            phaseResponse   `json:"current_phase"`
	AllPhases               []phaseResponse `json:"all_phases"`
	DaysUntilNextPeriod     int             `json:"days_until_next_period"`
}

func newSpanResponse(span services.DateSpan) spanResponse {
	return spanResponse{Start: services.FormatISODate(span.Start), End: services.FormatISODate(span.End)}
}

func newPhaseResponse(phase services.CyclePhase) phaseResponse {
	return phaseResponse{
		Key:          phase.Key,
		Name:         string(phase.Name),
		StartDate:    services.FormatISODate(phase.StartDate),
		EndDate:      services.FormatISODate(phase.EndDate),
		StartDisplay: services.FormatDisplayDate(phase.StartDate),
		EndDisplay:   services.FormatDisplayDate(phase.EndDate),
		Description:  phase.Description,
		Color:        phase.Color,
	}
}

func newPredictionResponse(result services.PredictionResult, today time.Time) predictionResponse {
	phases := make([]phaseResponse, 0, len(result.AllPhases))
	for _, phase := range result.AllPhases {
		phases = append(phases, newPhaseResponse(phase))
	}

	return predictionResponse{
		Today:                   services.FormatISODate(today),
		NextPeriodStart:         services.FormatISODate(result.NextPeriodStart),
		NextPeriodStartDisplay:  services.FormatDisplayDate(result.NextPeriodStart),
		OvulationDate:           services.FormatISODate(result.OvulationDate),
		OvulationDateDisplay:    services.FormatDisplayDate(result.OvulationDate),
		FertileWindowStart:      services.FormatISODate(result.FertileWindowStart),
		FertileWindowEnd:        services.FormatISODate(result.FertileWindowEnd),
		SafeWindowPreOvulation:  newSpanResponse(result.SafeWindowPreOvulation),
		SafeWindowPostOvulation: newSpanResponse(result.SafeWindowPostOvulation),
		CurrentPhase:            newPhaseResponse(result.CurrentPhase),
		AllPhases:               phases,
		DaysUntilNextPeriod:     result.DaysUntilNextPeriod,
	}
}
