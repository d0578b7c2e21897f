package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

// Service manages a detailer's employees. Like cars, employees are
// soft-deleted so past submissions keep their assignment.
type Service struct {
	employees repository.EmployeeRepository
}

func NewService(employees repository.EmployeeRepository) *Service {
	return &Service{employees: employees}
}

func (s *Service) Add(ctx context.Context, detailerID uuid.UUID, req model.AddEmployeeRequest) (*model.Employee, error) {
	employee := &model.Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		Experience:  req.Experience,
		DetailerID:  detailerID,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *Service) List(ctx context.Context, detailerID uuid.UUID) ([]*model.Employee, error) {
	employees, err := s.employees.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *Service) Remove(ctx context.Context, detailerID, employeeID uuid.UUID) error {
	employee, err := s.employees.GetOwned(ctx, employeeID, detailerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Employee")
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.employees.SoftDelete(ctx, employee.ID); err != nil {
		return fmt.Errorf("failed to remove employee: %w", err)
	}
	return nil
}
