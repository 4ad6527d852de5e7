package services

import "time"

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "Jan 2, 2006"
)

// StartOfDay returns midnight of the calendar day value falls on in location.
func StartOfDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func AddDays(day time.Time, days int) time.Time {
	return dateOnly(day.AddDate(0, 0, days))
}

// DaysBetween returns the signed number of calendar days from earlier to later.
// It compares dates, not elapsed hours, so DST transitions never shift the result.
func DaysBetween(later time.Time, earlier time.Time) int {
	ly, lm, ld := later.Date()
	ey, em, ed := earlier.Date()
	laterUTC := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	earlierUTC := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(laterUTC.Sub(earlierUTC).Hours() / 24)
}

func FormatDisplayDate(day time.Time) string {
	return day.Format(displayDateLayout)
}

func FormatISODate(day time.Time) string {
	return day.Format(isoDateLayout)
}

func ParseISODate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(isoDateLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(parsed, location), nil
}

func sameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}
