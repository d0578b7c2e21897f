package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
)

const serviceColumns = `id, name, price, description, image_url, detailer_id,
	   duration, label_color, view_count, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, name, price, description, image_url, detailer_id,
			duration, label_color, view_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.Name,
		service.Price,
		service.Description,
		service.ImageURL,
		service.DetailerID,
		service.Duration,
		service.LabelColor,
		service.ViewCount,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", translateErr(err))
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE detailer_id = $1 ORDER BY created_at ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, detailerID); err != nil {
		return nil, fmt.Errorf("failed to list detailer services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE services SET view_count = view_count + 1 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to increment view count: %w", repository.ErrNotFound)
	}
	return nil
}
