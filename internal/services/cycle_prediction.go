package services

import (
	"errors"
	"time"
)

var ErrInvalidCycleInput = errors.New("invalid cycle input")

type PhaseName string

const (
	PhaseMenstruation      PhaseName = "Menstruation"
	PhaseFollicular        PhaseName = "Follicular Phase"
	PhaseOvulation         PhaseName = "Ovulation"
	PhaseFertileWindow     PhaseName = "Fertile Window"
	PhaseSafePreOvulation  PhaseName = "Safe Period (Pre-Ovulation)"
	PhaseSafePostOvulation PhaseName = "Safe Period (Post-Ovulation)"
	PhaseLuteal            PhaseName = "Luteal Phase"
)

const (
	ovulationOffsetDays   = 2
	fertileDaysBeforeOvul = 5
	fertileDaysAfterOvul  = 1
)

type phaseInfo struct {
	Key         string
	Description string
	Color       string
}

var phaseCatalog = map[PhaseName]phaseInfo{
	PhaseMenstruation: {
		Key:         "menstruation",
		Description: "Your period is happening now. Take care of yourself and track any symptoms.",
		Color:       "bg-app-blush",
	},
	PhaseFollicular: {
		Key:         "follicular",
		Description: "Your body is preparing for ovulation. Energy levels typically rise during this time.",
		Color:       "bg-app-lavender/60",
	},
	PhaseOvulation: {
		Key:         "ovulation",
		Description: "Your body is releasing an egg. This is when you're most fertile.",
		Color:       "bg-app-teal",
	},
	PhaseFertileWindow: {
		Key:         "fertile_window",
		Description: "This is when you're most likely to conceive if you have unprotected sex.",
		Color:       "bg-app-teal/70",
	},
	PhaseSafePreOvulation: {
		Key:         "safe_pre_ovulation",
		Description: "Lower chance of pregnancy, but still use protection if not planning to conceive.",
		Color:       "bg-app-sage/60",
	},
	PhaseSafePostOvulation: {
		Key:         "safe_post_ovulation",
		Description: "Lower chance of pregnancy, but still use protection if not planning to conceive.",
		Color:       "bg-app-sage/60",
	},
	PhaseLuteal: {
		Key:         "luteal",
		Description: "Your body is preparing either for pregnancy or menstruation. You may experience PMS symptoms.",
		Color:       "bg-app-peach/70",
	},
}

type CycleData struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodLength    int
}

// DateSpan is an inclusive range of calendar days. Start may fall after End
// for short cycles; such a span contains no day.
type DateSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (span DateSpan) Inverted() bool {
	return span.Start.After(span.End)
}

func (span DateSpan) Contains(day time.Time) bool {
	return DaysBetween(day, span.Start) >= 0 && DaysBetween(span.End, day) >= 0
}

type CyclePhase struct {
	Key         string    `json:"key"`
	Name        PhaseName `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
}

func (phase CyclePhase) Span() DateSpan {
	return DateSpan{Start: phase.StartDate, End: phase.EndDate}
}

type PhaseSchedule struct {
	PeriodEnd               time.Time
	NextPeriodStart         time.Time
	OvulationDate           time.Time
	FertileWindow           DateSpan
	SafeWindowPreOvulation  DateSpan
	SafeWindowPostOvulation DateSpan
	Phases                  []CyclePhase
}

// Degenerate reports whether any phase interval came out inverted.
func (schedule PhaseSchedule) Degenerate() bool {
	for _, phase := range schedule.Phases {
		if phase.Span().Inverted() {
			return true
		}
	}
	return false
}

type PredictionResult struct {
	NextPeriodStart         time.Time    `json:"next_period_start"`
	OvulationDate           time.Time    `json:"ovulation_date"`
	FertileWindowStart      time.Time    `json:"fertile_window_start"`
	FertileWindowEnd        time.Time    `json:"fertile_window_end"`
	SafeWindowPreOvulation  DateSpan     `json:"safe_window_pre_ovulation"`
	SafeWindowPostOvulation DateSpan     `json:"safe_window_post_ovulation"`
	CurrentPhase            CyclePhase   `json:"current_phase"`
	AllPhases               []CyclePhase `json:"all_phases"`
	DaysUntilNextPeriod     int          `json:"days_until_next_period"`
}

func ValidateCycleData(data CycleData) error {
	if data.CycleLength <= 0 || data.PeriodLength <= 0 {
		return ErrInvalidCycleInput
	}
	return nil
}

// BuildPhaseSchedule derives the seven phase intervals of the cycle starting at
// data.LastPeriodStart. Intervals are emitted as computed, inverted or not.
func BuildPhaseSchedule(data CycleData) PhaseSchedule {
	start := dateOnly(data.LastPeriodStart)

	periodEnd := AddDays(start, data.PeriodLength-1)
	nextPeriodStart := AddDays(start, data.CycleLength)
	ovulationDate := AddDays(start, data.CycleLength/2-ovulationOffsetDays)

	fertile := DateSpan{
		Start: AddDays(ovulationDate, -fertileDaysBeforeOvul),
		End:   AddDays(ovulationDate, fertileDaysAfterOvul),
	}
	safePre := DateSpan{
		Start: AddDays(periodEnd, 1),
		End:   AddDays(fertile.Start, -1),
	}
	safePost := DateSpan{
		Start: AddDays(fertile.End, 1),
		End:   AddDays(nextPeriodStart, -1),
	}
	follicular := DateSpan{
		Start: AddDays(start, data.PeriodLength),
		End:   AddDays(ovulationDate, -1),
	}
	luteal := DateSpan{
		Start: AddDays(ovulationDate, 1),
		End:   AddDays(nextPeriodStart, -1),
	}

	return PhaseSchedule{
		PeriodEnd:               periodEnd,
		NextPeriodStart:         nextPeriodStart,
		OvulationDate:           ovulationDate,
		FertileWindow:           fertile,
		SafeWindowPreOvulation:  safePre,
		SafeWindowPostOvulation: safePost,
		Phases: []CyclePhase{
			newCyclePhase(PhaseMenstruation, DateSpan{Start: start, End: periodEnd}),
			newCyclePhase(PhaseFollicular, follicular),
			newCyclePhase(PhaseOvulation, DateSpan{Start: ovulationDate, End: ovulationDate}),
			newCyclePhase(PhaseFertileWindow, fertile),
			newCyclePhase(PhaseSafePreOvulation, safePre),
			newCyclePhase(PhaseSafePostOvulation, safePost),
			newCyclePhase(PhaseLuteal, luteal),
		},
	}
}

func newCyclePhase(name PhaseName, span DateSpan) CyclePhase {
	info := phaseCatalog[name]
	return CyclePhase{
		Key:         info.Key,
		Name:        name,
		StartDate:   span.Start,
		EndDate:     span.End,
		Description: info.Description,
		Color:       info.Color,
	}
}

// ResolveCurrentPhase returns the first phase containing today, in schedule
// order. When nothing matches the last phase is returned.
func ResolveCurrentPhase(today time.Time, phases []CyclePhase) CyclePhase {
	if len(phases) == 0 {
		return CyclePhase{}
	}

	day := dateOnly(today)
	for _, phase := range phases {
		if phase.Span().Contains(day) {
			return phase
		}
	}
	return phases[len(phases)-1]
}

func PredictCycle(data CycleData, today time.Time) (PredictionResult, error) {
	if err := ValidateCycleData(data); err != nil {
		return PredictionResult{}, err
	}

	day := dateOnly(today)
	schedule := BuildPhaseSchedule(data)

	daysUntilNextPeriod := DaysBetween(schedule.NextPeriodStart, day)
	if daysUntilNextPeriod < 0 {
		daysUntilNextPeriod = 0
	}

	return PredictionResult{
		NextPeriodStart:         schedule.NextPeriodStart,
		OvulationDate:           schedule.OvulationDate,
		FertileWindowStart:      schedule.FertileWindow.Start,
		FertileWindowEnd:        schedule.FertileWindow.End,
		SafeWindowPreOvulation:  schedule.SafeWindowPreOvulation,
		SafeWindowPostOvulation: schedule.SafeWindowPostOvulation,
		CurrentPhase:            ResolveCurrentPhase(day, schedule.Phases),
		AllPhases:               schedule.Phases,
		DaysUntilNextPeriod:     daysUntilNextPeriod,
	}, nil
}
