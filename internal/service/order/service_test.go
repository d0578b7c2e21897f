package order

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
	cars        *repotest.CarRepo
	submissions *repotest.SubmissionRepo
	statuses    *repotest.StatusRepo
	employees   *repotest.EmployeeRepo
	detailer    *model.User
	client      *model.User
	service     *model.Service
	car         *model.Car
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := repotest.NewUserRepo()
	roles := repotest.NewRoleRepo()
	services := repotest.NewServiceRepo()
	submissions := repotest.NewSubmissionRepo()
	cars := repotest.NewCarRepo()
	employees := repotest.NewEmployeeRepo()
	statuses := repotest.NewStatusRepo(model.StatusPending, model.StatusInProgress, model.StatusDone)

	detailer := &model.User{Username: "detailer", Email: "detailer@example.com"}
	client := &model.User{Username: "client", Email: "client@example.com", FirstName: "Anna", LastName: "Nowak", Phone: "600700800"}
	require.NoError(t, users.Create(ctx, detailer))
	require.NoError(t, users.Create(ctx, client))

	service := &model.Service{Name: "Wax", Price: 80, DetailerID: detailer.ID}
	require.NoError(t, services.Create(ctx, service))

	car := &model.Car{Manufacturer: "Opel", Model: "Astra", UserID: client.ID}
	require.NoError(t, cars.Create(ctx, car))

	svc := NewService(submissions, services, users, cars, employees, statuses,
		refdata.NewService(roles, statuses), nil, nil)

	return &fixture{
		svc:         svc,
		users:       users,
		cars:        cars,
		submissions: submissions,
		statuses:    statuses,
		employees:   employees,
		detailer:    detailer,
		client:      client,
		service:     service,
		car:         car,
	}
}

func (f *fixture) addSubmission(t *testing.T, day int, statusName string) *model.Submission {
	t.Helper()
	submission := &model.Submission{
		Date:       time.Date(2026, 9, day, 9, 0, 0, 0, time.Local),
		ScheduleID: uuid.New(),
		ServiceID:  f.service.ID,
		UserID:     f.client.ID,
		CarID:      f.car.ID,
		StatusID:   f.statuses.ByName(statusName).ID,
	}
	require.NoError(t, f.submissions.Create(context.Background(), submission))
	return submission
}

func TestAllOrders(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(t, 7, model.StatusPending)

	orders, err := f.svc.AllOrders(context.Background(), f.detailer.ID)
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "Anna Nowak", orders[0].ClientFullName)
	assert.Equal(t, "600700800", orders[0].ClientPhone)
	assert.Equal(t, "Opel Astra", orders[0].Car)
	assert.Equal(t, "Wax", orders[0].ServiceName)
	assert.Equal(t, "2026-09-07T09:00:00", orders[0].DueDate)
}

func TestAllOrdersDropsUnresolvedRecords(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(t, 7, model.StatusPending)
	broken := f.addSubmission(t, 8, model.StatusPending)

	// Simulate a dangling client reference.
	delete(f.users.Users, broken.UserID)
	f.addSubmission(t, 9, model.StatusPending)

	// All three submissions share the client, so deleting the user breaks
	// every record.
	orders, err := f.svc.AllOrders(context.Background(), f.detailer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(t, 7, model.StatusPending)
	f.addSubmission(t, 8, model.StatusPending)
	f.addSubmission(t, 9, model.StatusInProgress)
	f.addSubmission(t, 10, model.StatusDone)

	stats, err := f.svc.Stats(context.Background(), f.detailer.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, 1, stats.InProgressCount)
	assert.Equal(t, 1, stats.DoneCount)
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)
	employee := &model.Employee{FirstName: "Jan", LastName: "Kowalski", DetailerID: f.detailer.ID}
	require.NoError(t, f.employees.Create(context.Background(), employee))

	first := f.addSubmission(t, 7, model.StatusPending)
	first.EmployeeID = &employee.ID
	f.addSubmission(t, 7, model.StatusDone)

	analytics, err := f.svc.Analytics(context.Background(), f.detailer.ID, "2026-09-01", "2026-09-30")
	require.NoError(t, err)

	require.Len(t, analytics.Orders, 1)
	assert.Equal(t, "2026-09-07", analytics.Orders[0].Date)
	assert.Equal(t, 2, analytics.Orders[0].Count)

	require.Len(t, analytics.Employees, 1)
	assert.Equal(t, "Jan Kowalski", analytics.Employees[0].Employee)
	assert.Equal(t, 1, analytics.Employees[0].Count)

	require.Len(t, analytics.Clients, 1)
	assert.Equal(t, 2, analytics.Clients[0].Count)

	require.Len(t, analytics.Services, 1)
	assert.Equal(t, "Wax", analytics.Services[0].Service)
}

func TestAnalyticsRangeBounds(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(t, 30, model.StatusPending)

	after := &model.Submission{
		Date:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local),
		ScheduleID: uuid.New(),
		ServiceID:  f.service.ID,
		UserID:     f.client.ID,
		CarID:      f.car.ID,
		StatusID:   f.statuses.ByName(model.StatusPending).ID,
	}
	require.NoError(t, f.submissions.Create(context.Background(), after))

	analytics, err := f.svc.Analytics(context.Background(), f.detailer.ID, "2026-09-01", "2026-09-30")
	require.NoError(t, err)

	// The last day of the range counts; midnight of the next day does not.
	require.Len(t, analytics.Orders, 1)
	assert.Equal(t, "2026-09-30", analytics.Orders[0].Date)
	assert.Equal(t, 1, analytics.Orders[0].Count)
}

func TestAnalyticsRejectsMalformedDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Analytics(context.Background(), f.detailer.ID, "bad", "2026-09-30")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestClients(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(t, 7, model.StatusPending)
	f.addSubmission(t, 8, model.StatusPending)

	clients, err := f.svc.Clients(context.Background(), f.detailer.ID)
	require.NoError(t, err)

	require.Len(t, clients, 1)
	assert.Equal(t, "client@example.com", clients[0].Email)
}

func TestClientSubmitsKeepsRecordsWithBrokenReferences(t *testing.T) {
	f := newFixture(t)
	submission := f.addSubmission(t, 7, model.StatusPending)

	delete(f.cars.Cars, submission.CarID)

	submits, err := f.svc.ClientSubmits(context.Background(), f.detailer.ID, f.client.ID)
	require.NoError(t, err)

	require.Len(t, submits, 1)
	assert.Empty(t, submits[0].Car)
	assert.Equal(t, "Wax", submits[0].ServiceName)
	assert.Equal(t, model.StatusPending, submits[0].Status)
}
