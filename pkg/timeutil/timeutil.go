package timeutil

import (
	"time"
)

const (
	// DateFormat is the wire format for calendar dates.
	DateFormat = "2006-01-02"
	// DateTimeFormat is the wire format for local date-times.
	DateTimeFormat = "2006-01-02T15:04:05"
	// ClockFormat is the wire format for a time of day.
	ClockFormat = "15:04:05"
)

// ParseISO accepts a calendar date or a local date-time string.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateFormat, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateTimeFormat, s, time.Local)
}

// IsISODate reports whether s is a parseable ISO date or date-time.
func IsISODate(s string) bool {
	_, err := ParseISO(s)
	return err == nil
}

// DaysBetween returns the absolute whole-day span between two instants.
func DaysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// ISOWeekday maps time.Weekday onto the Monday=1..Sunday=7 convention used
// by schedule entries.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// SameDate reports whether two instants fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AtClock combines the calendar date of day with the clock reading of tod.
func AtClock(day, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, day.Location())
}
