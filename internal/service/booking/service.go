package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/logger"
	"github.com/detailerhq/booking-api/pkg/messaging"
	"github.com/detailerhq/booking-api/pkg/metrics"
	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// Event channels published on booking lifecycle changes.
const (
	EventBookingCreated     = "booking.created"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingRescheduled = "booking.rescheduled"
)

// BookingEvent is the payload published to the broker.
type BookingEvent struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name,omitempty"`
	UserID       uuid.UUID `json:"user_id"`
	UserEmail    string    `json:"user_email,omitempty"`
	Date         time.Time `json:"date"`
}

type Service struct {
	submissions repository.SubmissionRepository
	schedules   repository.ScheduleRepository
	services    repository.ServiceRepository
	cars        repository.CarRepository
	employees   repository.EmployeeRepository
	statuses    repository.StatusRepository
	users       repository.UserRepository
	refdata     *refdata.Service
	broker      messaging.Broker
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewService(
	submissions repository.SubmissionRepository,
	schedules repository.ScheduleRepository,
	services repository.ServiceRepository,
	cars repository.CarRepository,
	employees repository.EmployeeRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	refdataSvc *refdata.Service,
	broker messaging.Broker,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		submissions: submissions,
		schedules:   schedules,
		services:    services,
		cars:        cars,
		employees:   employees,
		statuses:    statuses,
		users:       users,
		refdata:     refdataSvc,
		broker:      broker,
		metrics:     m,
		logger:      log,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit books one schedule instance on a concrete date. Every precondition
// is checked before the insert; the (schedule, date) uniqueness constraint
// backstops the racy window between the pre-check and the write, and a
// constraint violation reads the same as a failed pre-check to the caller.
func (s *Service) Submit(ctx context.Context, serviceID uuid.UUID, date string, userID, carID uuid.UUID) (*model.Submission, error) {
	pending, err := s.refdata.StatusByName(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}

	service, err := s.services.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Service")
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	confirmed, err := timeutil.ParseISO(date)
	if err != nil {
		return nil, apperrors.Validation("Invalid date format, use YYYY-MM-DD")
	}
	if confirmed.Before(s.now()) {
		return nil, apperrors.Validation("Date in the past is not allowed")
	}

	schedule, err := s.schedules.GetByServiceAndTime(ctx, serviceID, confirmed.Format(timeutil.ClockFormat))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("Service time not found")
		}
		return nil, fmt.Errorf("failed to match schedule: %w", err)
	}

	taken, err := s.submissions.ExistsOnDate(ctx, schedule.ID, confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	if taken {
		return nil, apperrors.Validation("Selected schedule is not available")
	}

	if _, err := s.cars.Get(ctx, carID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Car")
		}
		return nil, fmt.Errorf("failed to load car: %w", err)
	}

	submission := &model.Submission{
		Date:       confirmed,
		ScheduleID: schedule.ID,
		ServiceID:  service.ID,
		UserID:     userID,
		CarID:      carID,
		StatusID:   pending.ID,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race for the slot.
			if s.metrics != nil {
				s.metrics.BookingConflicts.Inc()
			}
			return nil, apperrors.Validation("Selected schedule is not available")
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.publish(ctx, EventBookingCreated, submission, service.Name)

	return submission, nil
}

// Cancel deletes a submission permanently. Only the owning client may
// cancel; there is no soft delete or audit trail here.
func (s *Service) Cancel(ctx context.Context, actorID, submitID uuid.UUID) error {
	submission, err := s.getSubmission(ctx, submitID)
	if err != nil {
		return err
	}
	if submission.UserID != actorID {
		return apperrors.Authorization("User is not authorized for this action")
	}

	if err := s.submissions.Delete(ctx, submitID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCanceled.Inc()
	}
	s.publish(ctx, EventBookingCancelled, submission, "")

	return nil
}

// Reschedule moves a submission to a new date and car. The target slot must
// be free; the submission's own current date does not count as a conflict.
func (s *Service) Reschedule(ctx context.Context, actorID, submitID uuid.UUID, newDate string, carID uuid.UUID) error {
	if !timeutil.IsISODate(newDate) {
		return apperrors.Validation("Invalid date format, use YYYY-MM-DD")
	}

	submission, err := s.getSubmission(ctx, submitID)
	if err != nil {
		return err
	}
	if submission.UserID != actorID {
		return apperrors.Authorization("User is not authorized for this action")
	}

	confirmed, _ := timeutil.ParseISO(newDate)

	taken, err := s.submissions.ExistsOnDate(ctx, submission.ScheduleID, confirmed)
	if err != nil {
		return fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	if taken && !timeutil.SameDate(submission.Date, confirmed) {
		return apperrors.Validation("Schedule is not available")
	}

	submission.Date = confirmed
	submission.CarID = carID
	if err := s.submissions.Update(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.Validation("Schedule is not available")
		}
		return fmt.Errorf("failed to update submission: %w", err)
	}

	s.publish(ctx, EventBookingRescheduled, submission, "")
	return nil
}

// AssignEmployee sets the employee working a submission. Detailer-only:
// the actor must own the service the submission was booked against.
func (s *Service) AssignEmployee(ctx context.Context, actorID, submitID, employeeID uuid.UUID) error {
	submission, err := s.authorizeDetailer(ctx, actorID, submitID)
	if err != nil {
		return err
	}

	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Employee")
		}
		return fmt.Errorf("failed to load employee: %w", err)
	}

	submission.EmployeeID = &employeeID
	if err := s.submissions.Update(ctx, submission); err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

// SetStatus moves a submission to another status. Detailer-only.
func (s *Service) SetStatus(ctx context.Context, actorID, submitID, statusID uuid.UUID) error {
	submission, err := s.authorizeDetailer(ctx, actorID, submitID)
	if err != nil {
		return err
	}

	if _, err := s.statuses.Get(ctx, statusID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Status")
		}
		return fmt.Errorf("failed to load status: %w", err)
	}

	submission.StatusID = statusID
	if err := s.submissions.Update(ctx, submission); err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

// ListForClient returns a client's upcoming bookings joined with service
// and car descriptions.
func (s *Service) ListForClient(ctx context.Context, userID uuid.UUID) ([]model.ClientSubmission, error) {
	submissions, err := s.submissions.ListFutureByUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	result := []model.ClientSubmission{}
	for _, sub := range submissions {
		service, err := s.services.Get(ctx, sub.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load service: %w", err)
		}

		carName := ""
		if car, err := s.cars.Get(ctx, sub.CarID); err == nil {
			carName = car.DisplayName()
		}

		result = append(result, model.ClientSubmission{
			SubmitID:     sub.ID,
			ServiceID:    service.ID,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			ServiceImage: service.ImageURL,
			Date:         sub.Date,
			CarID:        sub.CarID,
			CarName:      carName,
		})
	}
	return result, nil
}

func (s *Service) getSubmission(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	submission, err := s.submissions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("Service submit not found")
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return submission, nil
}

// authorizeDetailer resolves submission -> schedule -> service and verifies
// the actor owns the service.
func (s *Service) authorizeDetailer(ctx context.Context, actorID, submitID uuid.UUID) (*model.Submission, error) {
	submission, err := s.getSubmission(ctx, submitID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.Get(ctx, submission.ScheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Schedule")
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	service, err := s.services.Get(ctx, schedule.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Service")
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	if service.DetailerID != actorID {
		return nil, apperrors.Authorization("User has not permission to do this action")
	}
	return submission, nil
}

// publish sends a lifecycle event. Delivery is best effort and never fails
// the booking operation.
func (s *Service) publish(ctx context.Context, eventType string, submission *model.Submission, serviceName string) {
	if s.broker == nil {
		return
	}

	event := BookingEvent{
		SubmissionID: submission.ID,
		ServiceID:    submission.ServiceID,
		ServiceName:  serviceName,
		UserID:       submission.UserID,
		Date:         submission.Date,
	}
	if user, err := s.users.Get(ctx, submission.UserID); err == nil {
		event.UserEmail = user.Email
	}

	if err := s.broker.Publish(ctx, eventType, event); err != nil {
		if s.metrics != nil {
			s.metrics.EventsFailed.WithLabelValues(eventType).Inc()
		}
		if s.logger != nil {
			s.logger.Error(err, "failed to publish booking event", "event_type", eventType)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType).Inc()
	}
}
