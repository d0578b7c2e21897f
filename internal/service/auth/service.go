package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	"github.com/detailerhq/booking-api/pkg/auth"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/security"
)

// Service authenticates credentials and issues token pairs.
type Service struct {
	users   repository.UserRepository
	refdata *refdata.Service
	hasher  security.PasswordHasher
	jwt     auth.JWTService
}

func NewService(users repository.UserRepository, refdataSvc *refdata.Service, hasher security.PasswordHasher, jwtSvc auth.JWTService) *Service {
	return &Service{
		users:   users,
		refdata: refdataSvc,
		hasher:  hasher,
		jwt:     jwtSvc,
	}
}

// Login checks credentials and returns an access/refresh token pair. Wrong
// username and wrong password read the same to the caller.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Authorization("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Authorization("Invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Authorization("Invalid refresh token")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Authorization("Invalid refresh token")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	role, err := s.refdata.RoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, string(role.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
