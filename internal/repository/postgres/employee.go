package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
)

const employeeColumns = `id, first_name, last_name, description, experience,
	   detailer_id, is_removed, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	query := `
		INSERT INTO employees (
			id, first_name, last_name, description, experience,
			detailer_id, is_removed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	employee.ID = uuid.New()
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Description,
		employee.Experience,
		employee.DetailerID,
		employee.IsRemoved,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var employee model.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", translateErr(err))
	}
	return &employee, nil
}

func (r *employeeRepository) GetOwned(ctx context.Context, id, detailerID uuid.UUID) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND detailer_id = $2 AND is_removed = FALSE`

	var employee model.Employee
	if err := r.db.GetContext(ctx, &employee, query, id, detailerID); err != nil {
		return nil, fmt.Errorf("failed to get owned employee: %w", translateErr(err))
	}
	return &employee, nil
}

func (r *employeeRepository) ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE detailer_id = $1 AND is_removed = FALSE ORDER BY created_at ASC`

	var employees []*model.Employee
	if err := r.db.SelectContext(ctx, &employees, query, detailerID); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1)`

	var employees []*model.Employee
	if err := r.db.SelectContext(ctx, &employees, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE employees SET is_removed = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to remove employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to remove employee: %w", repository.ErrNotFound)
	}
	return nil
}
