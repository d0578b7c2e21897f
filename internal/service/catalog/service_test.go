package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

func newService() (*Service, *repotest.ServiceRepo, *repotest.ScheduleRepo) {
	services := repotest.NewServiceRepo()
	schedules := repotest.NewScheduleRepo()
	return NewService(services, schedules, nil), services, schedules
}

func TestAddCreatesSchedules(t *testing.T) {
	svc, _, schedules := newService()
	detailerID := uuid.New()

	created, err := svc.Add(context.Background(), detailerID, model.CreateServiceRequest{
		Name:     "Polishing",
		Price:    150,
		Duration: 120,
		ServiceDays: []model.ServiceDay{
			{Day: 1, Time: "09:00:00"},
			{Day: 3, Time: "14:30:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, detailerID, created.DetailerID)
	assert.Equal(t, model.DefaultLabelColor, created.LabelColor)
	assert.Len(t, schedules.Schedules, 2)

	monday, err := schedules.ListByServiceAndDay(context.Background(), created.ID, 1)
	require.NoError(t, err)
	require.Len(t, monday, 1)
	assert.Equal(t, "09:00:00", monday[0].TimeOfDay)
}

func TestAddRejectsMalformedScheduleTime(t *testing.T) {
	svc, services, _ := newService()

	_, err := svc.Add(context.Background(), uuid.New(), model.CreateServiceRequest{
		Name:     "Polishing",
		Price:    150,
		Duration: 120,
		ServiceDays: []model.ServiceDay{
			{Day: 1, Time: "9am"},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, services.Services)
}

func TestGetIncrementsViewCount(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Add(context.Background(), uuid.New(), model.CreateServiceRequest{
		Name: "Polishing", Price: 150, Duration: 120,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
	}

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, fetched.ViewCount)
}

func TestGetUnknownService(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListForDetailer(t *testing.T) {
	svc, _, _ := newService()
	mine := uuid.New()

	_, err := svc.Add(context.Background(), mine, model.CreateServiceRequest{Name: "Polishing", Price: 150, Duration: 60})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), uuid.New(), model.CreateServiceRequest{Name: "Wax", Price: 80, Duration: 30})
	require.NoError(t, err)

	owned, err := svc.ListForDetailer(context.Background(), mine)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Polishing", owned[0].Name)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
