package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

type fixture struct {
	svc         *Service
	users       *repotest.UserRepo
	roles       *repotest.RoleRepo
	services    *repotest.ServiceRepo
	schedules   *repotest.ScheduleRepo
	submissions *repotest.SubmissionRepo
	cars        *repotest.CarRepo
	statuses    *repotest.StatusRepo
	employees   *repotest.EmployeeRepo
	detailer    *model.User
	client      *model.User
	otherClient *model.User
	service     *model.Service
	schedule    *model.Schedule
	car         *model.Car
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := repotest.NewUserRepo()
	roles := repotest.NewRoleRepo()
	services := repotest.NewServiceRepo()
	schedules := repotest.NewScheduleRepo()
	submissions := repotest.NewSubmissionRepo()
	cars := repotest.NewCarRepo()
	employees := repotest.NewEmployeeRepo()
	statuses := repotest.NewStatusRepo(model.StatusPending, model.StatusInProgress, model.StatusDone)

	detailer := &model.User{Username: "detailer", Email: "detailer@example.com"}
	client := &model.User{Username: "client", Email: "client@example.com"}
	other := &model.User{Username: "other", Email: "other@example.com"}
	require.NoError(t, users.Create(ctx, detailer))
	require.NoError(t, users.Create(ctx, client))
	require.NoError(t, users.Create(ctx, other))

	service := &model.Service{Name: "Interior Cleaning", Price: 120, Duration: 90, DetailerID: detailer.ID}
	require.NoError(t, services.Create(ctx, service))

	schedule := &model.Schedule{ServiceID: service.ID, DayOfWeek: 1, TimeOfDay: "09:00:00"}
	require.NoError(t, schedules.Create(ctx, schedule))

	car := &model.Car{Manufacturer: "Audi", Model: "A4", YearOfProduction: 2019, UserID: client.ID}
	require.NoError(t, cars.Create(ctx, car))

	svc := NewService(
		submissions, schedules, services, cars, employees, statuses, users,
		refdata.NewService(roles, statuses), nil, nil, nil,
	).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	})

	return &fixture{
		svc:         svc,
		users:       users,
		roles:       roles,
		services:    services,
		schedules:   schedules,
		submissions: submissions,
		cars:        cars,
		statuses:    statuses,
		employees:   employees,
		detailer:    detailer,
		client:      client,
		otherClient: other,
		service:     service,
		schedule:    schedule,
		car:         car,
	}
}

func (f *fixture) submit(t *testing.T, date string) *model.Submission {
	t.Helper()
	submission, err := f.svc.Submit(context.Background(), f.service.ID, date, f.client.ID, f.car.ID)
	require.NoError(t, err)
	return submission
}

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, message, err.(*apperrors.AppError).Message)
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)

	submission := f.submit(t, "2026-09-07T09:00:00")

	assert.Equal(t, f.schedule.ID, submission.ScheduleID)
	assert.Equal(t, f.service.ID, submission.ServiceID)
	assert.Equal(t, f.client.ID, submission.UserID)
	assert.Equal(t, f.statuses.ByName(model.StatusPending).ID, submission.StatusID)
	assert.Nil(t, submission.EmployeeID)
}

func TestSubmitRejectsTakenSlot(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2026-09-07T09:00:00")

	_, err := f.svc.Submit(context.Background(), f.service.ID, "2026-09-07T09:00:00", f.otherClient.ID, f.car.ID)
	assertValidation(t, err, "Selected schedule is not available")
}

// freeSlotSubmissions reports every slot as open, so two racing submits both
// pass the occupancy check and the second one has to be stopped by the
// store's uniqueness constraint.
type freeSlotSubmissions struct {
	*repotest.SubmissionRepo
}

func (r *freeSlotSubmissions) ExistsOnDate(context.Context, uuid.UUID, time.Time) (bool, error) {
	return false, nil
}

func TestSubmitRejectsSlotTakenDuringCreate(t *testing.T) {
	f := newFixture(t)
	svc := NewService(
		&freeSlotSubmissions{f.submissions}, f.schedules, f.services, f.cars,
		f.employees, f.statuses, f.users,
		refdata.NewService(f.roles, f.statuses), nil, nil, nil,
	).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	})

	_, err := svc.Submit(context.Background(), f.service.ID, "2026-09-07T09:00:00", f.client.ID, f.car.ID)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), f.service.ID, "2026-09-07T09:00:00", f.otherClient.ID, f.car.ID)
	assertValidation(t, err, "Selected schedule is not available")
	assert.Len(t, f.submissions.Submissions, 1)
}

func TestSubmitRejectsUnknownTime(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.service.ID, "2026-09-07T11:30:00", f.client.ID, f.car.ID)
	assertValidation(t, err, "Service time not found")
}

func TestSubmitRejectsPastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.service.ID, "2026-08-31T09:00:00", f.client.ID, f.car.ID)
	assertValidation(t, err, "Date in the past is not allowed")
}

func TestSubmitRejectsMalformedDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.service.ID, "07.09.2026", f.client.ID, f.car.ID)
	assertValidation(t, err, "Invalid date format, use YYYY-MM-DD")
}

func TestSubmitMissingPendingStatusIsConfigError(t *testing.T) {
	f := newFixture(t)
	for id, status := range f.statuses.Statuses {
		if status.Name == model.StatusPending {
			delete(f.statuses.Statuses, id)
		}
	}

	_, err := f.svc.Submit(context.Background(), f.service.ID, "2026-09-07T09:00:00", f.client.ID, f.car.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	require.NoError(t, f.svc.Cancel(context.Background(), f.client.ID, submission.ID))
	assert.Empty(t, f.submissions.Submissions)
}

func TestCancelRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	err := f.svc.Cancel(context.Background(), f.otherClient.ID, submission.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	assert.Equal(t, "User is not authorized for this action", err.(*apperrors.AppError).Message)
}

func TestCancelUnknownSubmission(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), f.client.ID, uuid.New())
	assertValidation(t, err, "Service submit not found")
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	err := f.svc.Reschedule(context.Background(), f.client.ID, submission.ID, "2026-09-14T09:00:00", f.car.ID)
	require.NoError(t, err)

	updated, _ := f.submissions.Get(context.Background(), submission.ID)
	assert.Equal(t, 14, updated.Date.Day())
}

func TestRescheduleToOccupiedDate(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2026-09-07T09:00:00")

	second, err := f.svc.Submit(context.Background(), f.service.ID, "2026-09-14T09:00:00", f.client.ID, f.car.ID)
	require.NoError(t, err)

	err = f.svc.Reschedule(context.Background(), f.client.ID, second.ID, "2026-09-07T09:00:00", f.car.ID)
	assertValidation(t, err, "Schedule is not available")
}

func TestRescheduleToOwnDateIsAllowed(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	err := f.svc.Reschedule(context.Background(), f.client.ID, submission.ID, "2026-09-07T09:00:00", f.car.ID)
	assert.NoError(t, err)
}

func TestAssignEmployee(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	employee := &model.Employee{FirstName: "Jan", LastName: "Kowalski", DetailerID: f.detailer.ID}
	require.NoError(t, f.employees.Create(context.Background(), employee))

	require.NoError(t, f.svc.AssignEmployee(context.Background(), f.detailer.ID, submission.ID, employee.ID))

	updated, _ := f.submissions.Get(context.Background(), submission.ID)
	require.NotNil(t, updated.EmployeeID)
	assert.Equal(t, employee.ID, *updated.EmployeeID)
}

func TestAssignEmployeeRequiresServiceOwnership(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	employee := &model.Employee{FirstName: "Jan", DetailerID: f.detailer.ID}
	require.NoError(t, f.employees.Create(context.Background(), employee))

	err := f.svc.AssignEmployee(context.Background(), f.otherClient.ID, submission.ID, employee.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	assert.Equal(t, "User has not permission to do this action", err.(*apperrors.AppError).Message)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")
	done := f.statuses.ByName(model.StatusDone)

	require.NoError(t, f.svc.SetStatus(context.Background(), f.detailer.ID, submission.ID, done.ID))

	updated, _ := f.submissions.Get(context.Background(), submission.ID)
	assert.Equal(t, done.ID, updated.StatusID)
}

func TestSetStatusUnknownStatus(t *testing.T) {
	f := newFixture(t)
	submission := f.submit(t, "2026-09-07T09:00:00")

	err := f.svc.SetStatus(context.Background(), f.detailer.ID, submission.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListForClient(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2026-09-07T09:00:00")
	f.submit(t, "2026-09-14T09:00:00")

	listed, err := f.svc.ListForClient(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, item := range listed {
		assert.Equal(t, "Interior Cleaning", item.ServiceName)
		assert.Equal(t, "Audi A4", item.CarName)
	}

	listed, err = f.svc.ListForClient(context.Background(), f.otherClient.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
