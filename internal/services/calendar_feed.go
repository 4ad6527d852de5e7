package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	calendarProductID = "-//phasecast//cycle forecast//EN"
	calendarName      = "Cycle forecast"
	calendarUIDDomain = "phasecast"
	nextPeriodKey     = "next_period"
)

// BuildCalendarFeed renders a prediction as an iCalendar document with one
// all-day event per non-inverted phase and one for the next period start.
func BuildCalendarFeed(result PredictionResult, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText("X-WR-CALNAME", calendarName)

	stamp := now.UTC()
	for _, phase := range result.AllPhases {
		if phase.Span().Inverted() {
			continue
		}
		event := newAllDayEvent(
			calendarEventUID(phase.Key, phase.StartDate),
			string(phase.Name),
			phase.Description,
			phase.StartDate,
			phase.EndDate,
			stamp,
		)
		cal.Children = append(cal.Children, event.Component)
	}

	next := newAllDayEvent(
		calendarEventUID(nextPeriodKey, result.NextPeriodStart),
		"Next period",
		fmt.Sprintf("Predicted start of the next period (%s).", FormatDisplayDate(result.NextPeriodStart)),
		result.NextPeriodStart,
		result.NextPeriodStart,
		stamp,
	)
	cal.Children = append(cal.Children, next.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func newAllDayEvent(uid string, summary string, description string, start time.Time, end time.Time, stamp time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, description)
	event.Props.SetDate(ical.PropDateTimeStart, dateOnly(start))
	// DTEND is exclusive for all-day events.
	event.Props.SetDate(ical.PropDateTimeEnd, AddDays(end, 1))
	return event
}

func calendarEventUID(key string, day time.Time) string {
	return fmt.Sprintf("%s-%s@%s", key, day.Format("20060102"), calendarUIDDomain)
}
