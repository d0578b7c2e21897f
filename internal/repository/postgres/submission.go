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

const submissionColumns = `id, date, schedule_id, service_id, user_id, car_id,
	   status_id, employee_id, created_at, updated_at`

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	query := `
		INSERT INTO submissions (
			id, date, schedule_id, service_id, user_id, car_id,
			status_id, employee_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	submission.ID = uuid.New()
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.Date,
		submission.ScheduleID,
		submission.ServiceID,
		submission.UserID,
		submission.CarID,
		submission.StatusID,
		submission.EmployeeID,
		submission.CreatedAt,
		submission.UpdatedAt,
	)
	if err != nil {
		// The (schedule_id, date) unique index turns a concurrent
		// double-booking into ErrDuplicate here.
		return fmt.Errorf("failed to create submission: %w", translateErr(err))
	}
	return nil
}

func (r *submissionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	var submission model.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", translateErr(err))
	}
	return &submission, nil
}

func (r *submissionRepository) Update(ctx context.Context, submission *model.Submission) error {
	query := `
		UPDATE submissions
		SET date = $1, car_id = $2, status_id = $3, employee_id = $4, updated_at = $5
		WHERE id = $6
	`
	submission.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		submission.Date,
		submission.CarID,
		submission.StatusID,
		submission.EmployeeID,
		submission.UpdatedAt,
		submission.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", translateErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update submission: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM submissions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete submission: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *submissionRepository) ExistsOnDate(ctx context.Context, scheduleID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM submissions
			WHERE schedule_id = $1 AND date::date = $2::date
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, scheduleID, date); err != nil {
		return false, fmt.Errorf("failed to check submission existence: %w", err)
	}
	return exists, nil
}

func (r *submissionRepository) ListFutureByUser(ctx context.Context, userID uuid.UUID, after time.Time) ([]*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE user_id = $1 AND date > $2
		ORDER BY date ASC
	`
	var submissions []*model.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, userID, after); err != nil {
		return nil, fmt.Errorf("failed to list user submissions: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) ListByServiceIDs(ctx context.Context, serviceIDs []uuid.UUID) ([]*model.Submission, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE service_id = ANY($1)
		ORDER BY date ASC
	`
	var submissions []*model.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, pq.Array(serviceIDs)); err != nil {
		return nil, fmt.Errorf("failed to list submissions by services: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) ListByServiceIDsAndUser(ctx context.Context, serviceIDs []uuid.UUID, userID uuid.UUID) ([]*model.Submission, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE service_id = ANY($1) AND user_id = $2
		ORDER BY date ASC
	`
	var submissions []*model.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, pq.Array(serviceIDs), userID); err != nil {
		return nil, fmt.Errorf("failed to list client submissions: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) ListByServiceIDsInRange(ctx context.Context, serviceIDs []uuid.UUID, from, to time.Time) ([]*model.Submission, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE service_id = ANY($1) AND date >= $2 AND date < $3
		ORDER BY date ASC
	`
	var submissions []*model.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, pq.Array(serviceIDs), from, to); err != nil {
		return nil, fmt.Errorf("failed to list submissions in range: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) ExistsFutureByCar(ctx context.Context, carID uuid.UUID, after time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM submissions
			WHERE car_id = $1 AND date > $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, carID, after); err != nil {
		return false, fmt.Errorf("failed to check car submissions: %w", err)
	}
	return exists, nil
}
