package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkingHours is a per-professional, per-weekday availability template.
// Start and end are local wall-clock times without a date component.
type WorkingHours struct {
	ProfessionalID uuid.UUID
	DayOfWeek      int // 0 = Sunday .. 6 = Saturday
	IsWorkingDay   bool
	StartTime      *string // "HH:MM:SS" or "HH:MM"
	EndTime        *string
}

// WorkingWindow is the absolute interval during which a professional is
// available on a given date.
type WorkingWindow struct {
	Start time.Time
	End   time.Time
}

// IsZero returns true for the empty window
func (w WorkingWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// WeekdayOf returns the 0-6 weekday of a calendar date. Only the
// year/month/day components participate, so the result never shifts across
// timezone boundaries.
func WeekdayOf(date time.Time) int {
	y, m, d := date.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday())
}

// WindowOn combines the template with a calendar date, producing absolute
// instants in loc. The second return value is false when the professional
// does not work that day: a nil template, is_working_day = false, unset
// start/end, or a template whose start is not before its end.
func (wh *WorkingHours) WindowOn(date time.Time, loc *time.Location) (WorkingWindow, bool) {
	if wh == nil || !wh.IsWorkingDay || wh.StartTime == nil || wh.EndTime == nil {
		return WorkingWindow{}, false
	}

	startH, startM, ok := parseTimeOfDay(*wh.StartTime)
	if !ok {
		return WorkingWindow{}, false
	}
	endH, endM, ok := parseTimeOfDay(*wh.EndTime)
	if !ok {
		return WorkingWindow{}, false
	}

	y, m, d := date.Date()
	window := WorkingWindow{
		Start: time.Date(y, m, d, startH, startM, 0, 0, loc),
		End:   time.Date(y, m, d, endH, endM, 0, 0, loc),
	}

	if !window.Start.Before(window.End) {
		return WorkingWindow{}, false
	}

	return window, true
}

// parseTimeOfDay accepts "HH:MM:SS" and "HH:MM" wall-clock strings
func parseTimeOfDay(s string) (hour, minute int, ok bool) {
	t, err := time.Parse(TimeOfDayFormat, s)
	if err != nil {
		t, err = time.Parse(TimeShortFormat, s)
		if err != nil {
			return 0, 0, false
		}
	}
	return t.Hour(), t.Minute(), true
}
