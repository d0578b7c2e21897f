package garage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

// Service manages a client's cars. Removal is a soft delete and is blocked
// while the car is attached to upcoming submissions.
type Service struct {
	cars        repository.CarRepository
	submissions repository.SubmissionRepository
	now         func() time.Time
}

func NewService(cars repository.CarRepository, submissions repository.SubmissionRepository) *Service {
	return &Service{
		cars:        cars,
		submissions: submissions,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Add(ctx context.Context, userID uuid.UUID, req model.AddCarRequest) (*model.Car, error) {
	car := &model.Car{
		Manufacturer:     req.Manufacturer,
		Model:            req.Model,
		YearOfProduction: req.YearOfProduction,
		UserID:           userID,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}
	return car, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.Car, error) {
	cars, err := s.cars.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

// Remove soft-deletes a car owned by the caller. A car still referenced by
// a future submission cannot be removed.
func (s *Service) Remove(ctx context.Context, userID, carID uuid.UUID) error {
	car, err := s.cars.GetOwned(ctx, carID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Car")
		}
		return fmt.Errorf("failed to get car: %w", err)
	}

	pending, err := s.submissions.ExistsFutureByCar(ctx, car.ID, s.now())
	if err != nil {
		return fmt.Errorf("failed to check car submissions: %w", err)
	}
	if pending {
		return apperrors.Validation("Car is connected with pending services")
	}

	if err := s.cars.SoftDelete(ctx, car.ID); err != nil {
		return fmt.Errorf("failed to remove car: %w", err)
	}
	return nil
}
