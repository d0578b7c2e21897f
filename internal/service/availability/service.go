package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/metrics"
	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// MaxRangeDays bounds an availability query. Longer ranges are rejected
// before any store lookup.
const MaxRangeDays = 31

type Service struct {
	services    repository.ServiceRepository
	schedules   repository.ScheduleRepository
	submissions repository.SubmissionRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewService(
	services repository.ServiceRepository,
	schedules repository.ScheduleRepository,
	submissions repository.SubmissionRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		services:    services,
		schedules:   schedules,
		submissions: submissions,
		metrics:     m,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetAvailableSlots computes open booking windows for a service across an
// inclusive date range. A window is open when the day matches a weekly
// schedule entry, no submission occupies that (schedule, date) pair, and
// the slot start has not already passed.
func (s *Service) GetAvailableSlots(ctx context.Context, serviceID uuid.UUID, dateFrom, dateTo string) ([]model.Slot, error) {
	if !timeutil.IsISODate(dateFrom) || !timeutil.IsISODate(dateTo) {
		return nil, apperrors.Validation("Invalid date format, use YYYY-MM-DD")
	}

	from, _ := timeutil.ParseISO(dateFrom)
	to, _ := timeutil.ParseISO(dateTo)

	if timeutil.DaysBetween(from, to) > MaxRangeDays {
		return nil, apperrors.Validation("Date range is too large")
	}

	service, err := s.services.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AvailabilityRequests.Inc()
	}

	now := s.now()
	duration := time.Duration(service.Duration) * time.Minute

	slots := []model.Slot{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		schedules, err := s.schedules.ListByServiceAndDay(ctx, serviceID, timeutil.ISOWeekday(day))
		if err != nil {
			return nil, fmt.Errorf("failed to list schedules: %w", err)
		}

		for _, schedule := range schedules {
			taken, err := s.submissions.ExistsOnDate(ctx, schedule.ID, day)
			if err != nil {
				return nil, fmt.Errorf("failed to check slot occupancy: %w", err)
			}
			if taken {
				continue
			}

			clock, err := schedule.Clock()
			if err != nil {
				return nil, fmt.Errorf("malformed schedule time %q: %w", schedule.TimeOfDay, err)
			}

			start := timeutil.AtClock(day, clock)
			if start.Before(now) {
				continue
			}

			slots = append(slots, model.Slot{
				Text:      start.Format("15:04") + " " + service.Name,
				Start:     start.Format(timeutil.DateTimeFormat),
				End:       start.Add(duration).Format(timeutil.DateTimeFormat),
				BackColor: service.LabelColor,
			})
		}
	}

	if s.metrics != nil {
		s.metrics.SlotsComputed.Observe(float64(len(slots)))
	}
	return slots, nil
}
