package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/detailerhq/booking-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type roleRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type scheduleRepository struct {
	db *sqlx.DB
}

type submissionRepository struct {
	db *sqlx.DB
}

type carRepository struct {
	db *sqlx.DB
}

type employeeRepository struct {
	db *sqlx.DB
}

type statusRepository struct {
	db *sqlx.DB
}

type invoiceRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func NewSubmissionRepository(db *sqlx.DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func NewCarRepository(db *sqlx.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func NewEmployeeRepository(db *sqlx.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func NewStatusRepository(db *sqlx.DB) repository.StatusRepository {
	return &statusRepository{db: db}
}

func NewInvoiceRepository(db *sqlx.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const pqUniqueViolation = "23505"

// translateErr maps driver-level failures onto the repository sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
