package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/security"
)

// Service owns account lifecycle: registration, profile reads and updates,
// password changes, role resolution.
type Service struct {
	users   repository.UserRepository
	refdata *refdata.Service
	hasher  security.PasswordHasher
}

func NewService(users repository.UserRepository, refdataSvc *refdata.Service, hasher security.PasswordHasher) *Service {
	return &Service{
		users:   users,
		refdata: refdataSvc,
		hasher:  hasher,
	}
}

// Register creates an account under the requested role. Role names outside
// the closed detailer/client set are rejected before any lookup.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	roleName := model.RoleName(req.Role)
	if !roleName.Valid() {
		return nil, apperrors.Validation("Invalid user role")
	}

	role, err := s.refdata.RoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("Password does not meet requirements")
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Username or email already taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Profile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Street:      user.Street,
		City:        user.City,
		ZipCode:     user.ZipCode,
		NIP:         user.NIP,
		CompanyName: user.CompanyName,
	}, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Street != nil {
		user.Street = *req.Street
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.ZipCode != nil {
		user.ZipCode = *req.ZipCode
	}
	if req.NIP != nil {
		user.NIP = *req.NIP
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already taken")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.Profile(ctx, userID)
}

// ChangePassword replaces the caller's password after confirming both
// request fields match.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req model.ChangePasswordRequest) error {
	if req.Password != req.PasswordConfirm {
		return apperrors.Validation("Passwords do not match")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.Validation("Password does not meet requirements")
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Role resolves the caller's role name. Used to gate the role-specific
// route groups.
func (s *Service) Role(ctx context.Context, userID uuid.UUID) (*model.Role, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.refdata.RoleByID(ctx, user.RoleID)
}

func (s *Service) getUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
