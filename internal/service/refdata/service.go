package refdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

const (
	cacheTTL        = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Service resolves reference-table rows (roles, submit statuses) by name.
// These tables change rarely, so lookups go through a small TTL cache.
// A missing named row is a data-integrity problem, not a caller mistake,
// and surfaces as a config error.
type Service struct {
	roles    repository.RoleRepository
	statuses repository.StatusRepository
	cache    *cache.Cache
}

func NewService(roles repository.RoleRepository, statuses repository.StatusRepository) *Service {
	return &Service{
		roles:    roles,
		statuses: statuses,
		cache:    cache.New(cacheTTL, cleanupInterval),
	}
}

func (s *Service) RoleByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	key := "role:" + string(name)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Role), nil
	}

	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Config(fmt.Sprintf("%s role not found, db error", name))
		}
		return nil, fmt.Errorf("failed to resolve role %q: %w", name, err)
	}

	s.cache.Set(key, role, cache.DefaultExpiration)
	return role, nil
}

func (s *Service) RoleByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	key := "role_id:" + id.String()
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Role), nil
	}

	role, err := s.roles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("Invalid user role")
		}
		return nil, fmt.Errorf("failed to resolve role %s: %w", id, err)
	}

	s.cache.Set(key, role, cache.DefaultExpiration)
	return role, nil
}

func (s *Service) StatusByName(ctx context.Context, name string) (*model.SubmitStatus, error) {
	key := "status:" + name
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.SubmitStatus), nil
	}

	status, err := s.statuses.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Config(fmt.Sprintf("%s status not exists", name))
		}
		return nil, fmt.Errorf("failed to resolve status %q: %w", name, err)
	}

	s.cache.Set(key, status, cache.DefaultExpiration)
	return status, nil
}
