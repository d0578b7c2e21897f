package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/logger"
	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// Service manages the detailing offerings catalog and their weekly
// schedule entries.
type Service struct {
	services  repository.ServiceRepository
	schedules repository.ScheduleRepository
	logger    *logger.Logger
}

func NewService(services repository.ServiceRepository, schedules repository.ScheduleRepository, log *logger.Logger) *Service {
	return &Service{
		services:  services,
		schedules: schedules,
		logger:    log,
	}
}

// Add creates an offering for a detailer together with its weekly slots.
// Each service day must carry a parseable HH:MM:SS time.
func (s *Service) Add(ctx context.Context, detailerID uuid.UUID, req model.CreateServiceRequest) (*model.Service, error) {
	for _, day := range req.ServiceDays {
		if _, err := time.Parse(timeutil.ClockFormat, day.Time); err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("Invalid service time %q, use HH:MM:SS", day.Time))
		}
	}

	labelColor := req.LabelColor
	if labelColor == "" {
		labelColor = model.DefaultLabelColor
	}

	service := &model.Service{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageFile,
		DetailerID:  detailerID,
		Duration:    req.Duration,
		LabelColor:  labelColor,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	for _, day := range req.ServiceDays {
		schedule := &model.Schedule{
			ServiceID: service.ID,
			DayOfWeek: day.Day,
			TimeOfDay: day.Time,
		}
		if err := s.schedules.Create(ctx, schedule); err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
	}
	return service, nil
}

// List returns every offering in the catalog.
func (s *Service) List(ctx context.Context) ([]*model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Get returns one offering and bumps its view counter. The counter write is
// best effort and never fails the read.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.services.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if err := s.services.IncrementViewCount(ctx, id); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to increment view count", "service_id", id.String(), "error", err.Error())
		}
	} else {
		service.ViewCount++
	}
	return service, nil
}

// ListForDetailer returns the offerings owned by one detailer.
func (s *Service) ListForDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Service, error) {
	services, err := s.services.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list detailer services: %w", err)
	}
	return services, nil
}
