package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
)

func (r *roleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	query := `SELECT id, name, display_name FROM roles WHERE id = $1`

	var role model.Role
	if err := r.db.GetContext(ctx, &role, query, id); err != nil {
		return nil, fmt.Errorf("failed to get role: %w", translateErr(err))
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	query := `SELECT id, name, display_name FROM roles WHERE name = $1`

	var role model.Role
	if err := r.db.GetContext(ctx, &role, query, name); err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", translateErr(err))
	}
	return &role, nil
}
