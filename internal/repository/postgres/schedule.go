package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
)

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, service_id, day_of_week, time_of_day, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	schedule.ID = uuid.New()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.ServiceID,
		schedule.DayOfWeek,
		schedule.TimeOfDay,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, service_id, day_of_week, time_of_day, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`
	var schedule model.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", translateErr(err))
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListByServiceAndDay(ctx context.Context, serviceID uuid.UUID, dayOfWeek int) ([]*model.Schedule, error) {
	query := `
		SELECT id, service_id, day_of_week, time_of_day, created_at, updated_at
		FROM schedules
		WHERE service_id = $1 AND day_of_week = $2
		ORDER BY time_of_day ASC
	`
	var schedules []*model.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, serviceID, dayOfWeek); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) GetByServiceAndTime(ctx context.Context, serviceID uuid.UUID, timeOfDay string) (*model.Schedule, error) {
	query := `
		SELECT id, service_id, day_of_week, time_of_day, created_at, updated_at
		FROM schedules
		WHERE service_id = $1 AND time_of_day = $2
		LIMIT 1
	`
	var schedule model.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, serviceID, timeOfDay); err != nil {
		return nil, fmt.Errorf("failed to get schedule by time: %w", translateErr(err))
	}
	return &schedule, nil
}
