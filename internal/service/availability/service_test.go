package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

type fixture struct {
	svc         *Service
	services    *repotest.ServiceRepo
	schedules   *repotest.ScheduleRepo
	submissions *repotest.SubmissionRepo
	service     *model.Service
	schedule    *model.Schedule
}

// newFixture sets up one service with a Monday 09:00 weekly slot and a
// clock frozen at Tue 2026-09-01 10:00 local time.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	services := repotest.NewServiceRepo()
	schedules := repotest.NewScheduleRepo()
	submissions := repotest.NewSubmissionRepo()

	service := &model.Service{
		Name:       "Ceramic Coating",
		Price:      250,
		Duration:   60,
		LabelColor: model.DefaultLabelColor,
	}
	require.NoError(t, services.Create(context.Background(), service))

	schedule := &model.Schedule{
		ServiceID: service.ID,
		DayOfWeek: 1,
		TimeOfDay: "09:00:00",
	}
	require.NoError(t, schedules.Create(context.Background(), schedule))

	svc := NewService(services, schedules, submissions, nil).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	})

	return &fixture{
		svc:         svc,
		services:    services,
		schedules:   schedules,
		submissions: submissions,
		service:     service,
		schedule:    schedule,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	f := newFixture(t)

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-09-14")
	require.NoError(t, err)

	// Two Mondays fall inside the inclusive range.
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00 Ceramic Coating", slots[0].Text)
	assert.Equal(t, "2026-09-07T09:00:00", slots[0].Start)
	assert.Equal(t, "2026-09-07T10:00:00", slots[0].End)
	assert.Equal(t, model.DefaultLabelColor, slots[0].BackColor)
	assert.Equal(t, "2026-09-14T09:00:00", slots[1].Start)
}

func TestGetAvailableSlotsIsIdempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-09-14")
	require.NoError(t, err)
	second, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-09-14")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAvailableSlotsExcludesBookedDates(t *testing.T) {
	f := newFixture(t)

	booked := &model.Submission{
		Date:       time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		ScheduleID: f.schedule.ID,
		ServiceID:  f.service.ID,
	}
	require.NoError(t, f.submissions.Create(context.Background(), booked))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-09-14")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "2026-09-14T09:00:00", slots[0].Start)
}

func TestGetAvailableSlotsExcludesPastStarts(t *testing.T) {
	f := newFixture(t)

	// Move the slot to Tuesday 09:00. On the frozen Tuesday the 09:00
	// start has already passed, so only the next week's instance shows.
	f.schedule.DayOfWeek = 2

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-09-14")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "2026-09-08T09:00:00", slots[0].Start)
}

func TestGetAvailableSlotsRejectsMalformedDates(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ from, to string }{
		{"2026/09/01", "2026-09-14"},
		{"2026-09-01", "not-a-date"},
		{"", "2026-09-14"},
	} {
		_, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, tc.from, tc.to)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Equal(t, "Invalid date format, use YYYY-MM-DD", err.(*apperrors.AppError).Message)
	}
}

func TestGetAvailableSlotsRejectsOversizedRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-10-15")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "Date range is too large", err.(*apperrors.AppError).Message)

	// Exactly 31 days is still allowed.
	_, err = f.svc.GetAvailableSlots(context.Background(), f.service.ID, "2026-09-01", "2026-10-02")
	assert.NoError(t, err)
}

func TestGetAvailableSlotsUnknownService(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAvailableSlots(context.Background(), f.schedule.ID, "2026-09-01", "2026-09-14")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
