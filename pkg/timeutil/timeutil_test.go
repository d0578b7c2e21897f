package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	parsed, err := ParseISO("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local), parsed)

	parsed, err = ParseISO("2026-09-07T09:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, time.Local), parsed)

	for _, s := range []string{"", "07.09.2026", "2026-13-01", "2026-09-07 09:30"} {
		_, err := ParseISO(s)
		assert.Error(t, err, s)
	}
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2026-09-07"))
	assert.True(t, IsISODate("2026-09-07T09:30:00"))
	assert.False(t, IsISODate("tomorrow"))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 13, DaysBetween(from, to))
	assert.Equal(t, 13, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 7, ISOWeekday(sunday))
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 7, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(morning, evening))
	assert.False(t, SameDate(morning, nextDay))
}

func TestAtClock(t *testing.T) {
	day := time.Date(2026, 9, 7, 23, 59, 0, 0, time.Local)
	tod, err := time.Parse(ClockFormat, "09:30:00")
	require.NoError(t, err)

	combined := AtClock(day, tod)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, time.Local), combined)
}
