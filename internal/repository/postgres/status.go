package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/detailerhq/booking-api/internal/model"
)

func (r *statusRepository) Get(ctx context.Context, id uuid.UUID) (*model.SubmitStatus, error) {
	query := `SELECT id, name FROM submit_statuses WHERE id = $1`

	var status model.SubmitStatus
	if err := r.db.GetContext(ctx, &status, query, id); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", translateErr(err))
	}
	return &status, nil
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*model.SubmitStatus, error) {
	query := `SELECT id, name FROM submit_statuses WHERE name = $1`

	var status model.SubmitStatus
	if err := r.db.GetContext(ctx, &status, query, name); err != nil {
		return nil, fmt.Errorf("failed to get status by name: %w", translateErr(err))
	}
	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]*model.SubmitStatus, error) {
	query := `SELECT id, name FROM submit_statuses ORDER BY name ASC`

	var statuses []*model.SubmitStatus
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

func (r *statusRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.SubmitStatus, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name FROM submit_statuses WHERE id = ANY($1)`

	var statuses []*model.SubmitStatus
	if err := r.db.SelectContext(ctx, &statuses, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to list statuses by ids: %w", err)
	}
	return statuses, nil
}
