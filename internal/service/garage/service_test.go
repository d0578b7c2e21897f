package garage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

func newService() (*Service, *repotest.CarRepo, *repotest.SubmissionRepo) {
	cars := repotest.NewCarRepo()
	submissions := repotest.NewSubmissionRepo()
	svc := NewService(cars, submissions).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	})
	return svc, cars, submissions
}

func TestAddAndList(t *testing.T) {
	svc, _, _ := newService()
	userID := uuid.New()

	car, err := svc.Add(context.Background(), userID, model.AddCarRequest{
		Manufacturer:     "Skoda",
		Model:            "Octavia",
		YearOfProduction: 2021,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, car.UserID)

	listed, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Skoda Octavia", listed[0].DisplayName())
}

func TestRemove(t *testing.T) {
	svc, _, _ := newService()
	userID := uuid.New()

	car, err := svc.Add(context.Background(), userID, model.AddCarRequest{
		Manufacturer: "Skoda", Model: "Octavia", YearOfProduction: 2021,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), userID, car.ID))

	listed, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRemoveBlockedByUpcomingSubmission(t *testing.T) {
	svc, _, submissions := newService()
	userID := uuid.New()

	car, err := svc.Add(context.Background(), userID, model.AddCarRequest{
		Manufacturer: "Skoda", Model: "Octavia", YearOfProduction: 2021,
	})
	require.NoError(t, err)

	require.NoError(t, submissions.Create(context.Background(), &model.Submission{
		Date:       time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		ScheduleID: uuid.New(),
		UserID:     userID,
		CarID:      car.ID,
	}))

	err = svc.Remove(context.Background(), userID, car.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "Car is connected with pending services", err.(*apperrors.AppError).Message)
}

func TestRemoveAllowedWhenSubmissionIsPast(t *testing.T) {
	svc, _, submissions := newService()
	userID := uuid.New()

	car, err := svc.Add(context.Background(), userID, model.AddCarRequest{
		Manufacturer: "Skoda", Model: "Octavia", YearOfProduction: 2021,
	})
	require.NoError(t, err)

	require.NoError(t, submissions.Create(context.Background(), &model.Submission{
		Date:       time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local),
		ScheduleID: uuid.New(),
		UserID:     userID,
		CarID:      car.ID,
	}))

	assert.NoError(t, svc.Remove(context.Background(), userID, car.ID))
}

func TestRemoveRequiresOwnership(t *testing.T) {
	svc, _, _ := newService()

	car, err := svc.Add(context.Background(), uuid.New(), model.AddCarRequest{
		Manufacturer: "Skoda", Model: "Octavia", YearOfProduction: 2021,
	})
	require.NoError(t, err)

	err = svc.Remove(context.Background(), uuid.New(), car.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
