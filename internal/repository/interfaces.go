package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint. For submissions this is the concurrent
	// double-booking case.
	ErrDuplicate = errors.New("duplicate record")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
	}

	RoleRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Role, error)
		GetByName(ctx context.Context, name model.RoleName) (*model.Role, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		List(ctx context.Context) ([]*model.Service, error)
		ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Service, error)
		IncrementViewCount(ctx context.Context, id uuid.UUID) error
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.Schedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
		ListByServiceAndDay(ctx context.Context, serviceID uuid.UUID, dayOfWeek int) ([]*model.Schedule, error)
		GetByServiceAndTime(ctx context.Context, serviceID uuid.UUID, timeOfDay string) (*model.Schedule, error)
	}

	SubmissionRepository interface {
		Create(ctx context.Context, submission *model.Submission) error
		Get(ctx context.Context, id uuid.UUID) (*model.Submission, error)
		Update(ctx context.Context, submission *model.Submission) error
		Delete(ctx context.Context, id uuid.UUID) error
		// ExistsOnDate checks (schedule, calendar date) occupancy,
		// comparing only the date portion.
		ExistsOnDate(ctx context.Context, scheduleID uuid.UUID, date time.Time) (bool, error)
		ListFutureByUser(ctx context.Context, userID uuid.UUID, after time.Time) ([]*model.Submission, error)
		ListByServiceIDs(ctx context.Context, serviceIDs []uuid.UUID) ([]*model.Submission, error)
		ListByServiceIDsAndUser(ctx context.Context, serviceIDs []uuid.UUID, userID uuid.UUID) ([]*model.Submission, error)
		ListByServiceIDsInRange(ctx context.Context, serviceIDs []uuid.UUID, from, to time.Time) ([]*model.Submission, error)
		ExistsFutureByCar(ctx context.Context, carID uuid.UUID, after time.Time) (bool, error)
	}

	CarRepository interface {
		Create(ctx context.Context, car *model.Car) error
		Get(ctx context.Context, id uuid.UUID) (*model.Car, error)
		GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Car, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Car, error)
		ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Car, error)
		SoftDelete(ctx context.Context, id uuid.UUID) error
	}

	EmployeeRepository interface {
		Create(ctx context.Context, employee *model.Employee) error
		Get(ctx context.Context, id uuid.UUID) (*model.Employee, error)
		GetOwned(ctx context.Context, id, detailerID uuid.UUID) (*model.Employee, error)
		ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Employee, error)
		ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Employee, error)
		SoftDelete(ctx context.Context, id uuid.UUID) error
	}

	StatusRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.SubmitStatus, error)
		GetByName(ctx context.Context, name string) (*model.SubmitStatus, error)
		List(ctx context.Context) ([]*model.SubmitStatus, error)
		ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.SubmitStatus, error)
	}

	InvoiceRepository interface {
		// Create assigns the next detailer-scoped number for the
		// creation year before inserting.
		Create(ctx context.Context, invoice *model.Invoice) error
		GetOwned(ctx context.Context, id, detailerID uuid.UUID) (*model.Invoice, error)
		ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Invoice, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}
)
