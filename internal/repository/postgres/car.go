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

const carColumns = `id, manufacturer, model, year_of_production, user_id,
	   is_removed, created_at, updated_at`

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	query := `
		INSERT INTO cars (
			id, manufacturer, model, year_of_production, user_id,
			is_removed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	car.ID = uuid.New()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		car.ID,
		car.Manufacturer,
		car.Model,
		car.YearOfProduction,
		car.UserID,
		car.IsRemoved,
		car.CreatedAt,
		car.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

func (r *carRepository) Get(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	var car model.Car
	if err := r.db.GetContext(ctx, &car, query, id); err != nil {
		return nil, fmt.Errorf("failed to get car: %w", translateErr(err))
	}
	return &car, nil
}

func (r *carRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 AND user_id = $2 AND is_removed = FALSE`

	var car model.Car
	if err := r.db.GetContext(ctx, &car, query, id, userID); err != nil {
		return nil, fmt.Errorf("failed to get owned car: %w", translateErr(err))
	}
	return &car, nil
}

func (r *carRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE user_id = $1 AND is_removed = FALSE ORDER BY created_at ASC`

	var cars []*model.Car
	if err := r.db.SelectContext(ctx, &cars, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

func (r *carRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = ANY($1)`

	var cars []*model.Car
	if err := r.db.SelectContext(ctx, &cars, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to list cars by ids: %w", err)
	}
	return cars, nil
}

func (r *carRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE cars SET is_removed = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to remove car: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to remove car: %w", repository.ErrNotFound)
	}
	return nil
}
