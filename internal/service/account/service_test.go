package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/security"
)

func newService() (*Service, *repotest.UserRepo, *repotest.RoleRepo) {
	users := repotest.NewUserRepo()
	roles := repotest.NewRoleRepo(
		&model.Role{ID: uuid.New(), Name: model.RoleDetailer, DisplayName: "Detailer"},
		&model.Role{ID: uuid.New(), Name: model.RoleClient, DisplayName: "Client"},
	)
	statuses := repotest.NewStatusRepo()
	svc := NewService(users, refdata.NewService(roles, statuses), security.NewBcryptHasher(4))
	return svc, users, roles
}

func TestRegister(t *testing.T) {
	svc, users, roles := newService()

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "s3cret-pass",
		Role:     "client",
	})
	require.NoError(t, err)

	clientRole, _ := roles.GetByName(context.Background(), model.RoleClient)
	assert.Equal(t, clientRole.ID, user.RoleID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.Len(t, users.Users, 1)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "s3cret-pass",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "Invalid user role", err.(*apperrors.AppError).Message)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newService()

	req := model.RegisterRequest{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "s3cret-pass",
		Role:     "client",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRegisterMissingRoleRowIsConfigError(t *testing.T) {
	svc, _, roles := newService()
	for id, role := range roles.Roles {
		if role.Name == model.RoleClient {
			delete(roles.Roles, id)
		}
	}

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "s3cret-pass",
		Role:     "client",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newService()

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna", Email: "anna@example.com", Password: "s3cret-pass", Role: "client",
	})
	require.NoError(t, err)

	phone := "600100200"
	profile, err := svc.UpdateProfile(context.Background(), user.ID, model.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "600100200", profile.Phone)
	assert.Equal(t, "anna@example.com", profile.Email)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newService()

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna", Email: "anna@example.com", Password: "s3cret-pass", Role: "client",
	})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	err = svc.ChangePassword(context.Background(), user.ID, model.ChangePasswordRequest{
		Password:        "new-password",
		PasswordConfirm: "new-password",
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, users.Users[user.ID].PasswordHash)
}

func TestChangePasswordMismatch(t *testing.T) {
	svc, _, _ := newService()

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna", Email: "anna@example.com", Password: "s3cret-pass", Role: "client",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, model.ChangePasswordRequest{
		Password:        "new-password",
		PasswordConfirm: "other-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRole(t *testing.T) {
	svc, _, _ := newService()

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "anna", Email: "anna@example.com", Password: "s3cret-pass", Role: "detailer",
	})
	require.NoError(t, err)

	role, err := svc.Role(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDetailer, role.Name)
}
