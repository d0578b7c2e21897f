package order

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	"github.com/detailerhq/booking-api/internal/service/refdata"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/logger"
	"github.com/detailerhq/booking-api/pkg/metrics"
	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// Service aggregates submissions across a detailer's services into the
// order listing, dashboard stats and analytics views. All joins are done
// in memory over batched lookups, one query per referenced table.
type Service struct {
	submissions repository.SubmissionRepository
	services    repository.ServiceRepository
	users       repository.UserRepository
	cars        repository.CarRepository
	employees   repository.EmployeeRepository
	statuses    repository.StatusRepository
	refdata     *refdata.Service
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewService(
	submissions repository.SubmissionRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
	cars repository.CarRepository,
	employees repository.EmployeeRepository,
	statuses repository.StatusRepository,
	refdataSvc *refdata.Service,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		submissions: submissions,
		services:    services,
		users:       users,
		cars:        cars,
		employees:   employees,
		statuses:    statuses,
		refdata:     refdataSvc,
		metrics:     m,
		logger:      log,
	}
}

// detailerScope loads the detailer's services plus every submission booked
// against them.
func (s *Service) detailerScope(ctx context.Context, detailerID uuid.UUID) (map[uuid.UUID]*model.Service, []*model.Submission, error) {
	services, err := s.services.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list detailer services: %w", err)
	}

	serviceByID := make(map[uuid.UUID]*model.Service, len(services))
	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
		serviceIDs = append(serviceIDs, svc.ID)
	}

	submissions, err := s.submissions.ListByServiceIDs(ctx, serviceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return serviceByID, submissions, nil
}

// AllOrders returns the fully joined order list for a detailer. A record
// whose client, car or service can no longer be resolved is dropped and
// counted, not returned half-empty.
func (s *Service) AllOrders(ctx context.Context, detailerID uuid.UUID) ([]model.Order, error) {
	serviceByID, submissions, err := s.detailerScope(ctx, detailerID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(submissions))
	carIDs := make([]uuid.UUID, 0, len(submissions))
	for _, sub := range submissions {
		userIDs = append(userIDs, sub.UserID)
		carIDs = append(carIDs, sub.CarID)
	}

	userByID, err := s.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	carByID, err := s.carsByID(ctx, carIDs)
	if err != nil {
		return nil, err
	}

	orders := []model.Order{}
	skipped := 0
	for _, sub := range submissions {
		service, okService := serviceByID[sub.ServiceID]
		client, okClient := userByID[sub.UserID]
		car, okCar := carByID[sub.CarID]
		if !okService || !okClient || !okCar {
			skipped++
			continue
		}

		orders = append(orders, model.Order{
			ID:             sub.ID,
			ClientID:       client.ID,
			ClientPhone:    client.Phone,
			ClientFullName: client.FullName(),
			Car:            car.DisplayName(),
			ServiceID:      service.ID,
			ServiceName:    service.Name,
			ServicePrice:   service.Price,
			DueDate:        sub.Date.Format(timeutil.DateTimeFormat),
			StatusID:       sub.StatusID,
			EmployeeID:     sub.EmployeeID,
		})
	}

	if skipped > 0 {
		if s.metrics != nil {
			s.metrics.OrdersSkipped.Add(float64(skipped))
		}
		if s.logger != nil {
			s.logger.Warn("dropped orders with unresolved references",
				"detailer_id", detailerID.String(), "skipped", skipped)
		}
	}
	return orders, nil
}

// Stats counts a detailer's submissions per lifecycle status.
func (s *Service) Stats(ctx context.Context, detailerID uuid.UUID) (*model.OrderStats, error) {
	pending, err := s.refdata.StatusByName(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.refdata.StatusByName(ctx, model.StatusInProgress)
	if err != nil {
		return nil, err
	}
	done, err := s.refdata.StatusByName(ctx, model.StatusDone)
	if err != nil {
		return nil, err
	}

	_, submissions, err := s.detailerScope(ctx, detailerID)
	if err != nil {
		return nil, err
	}

	stats := &model.OrderStats{}
	for _, sub := range submissions {
		switch sub.StatusID {
		case pending.ID:
			stats.PendingCount++
		case inProgress.ID:
			stats.InProgressCount++
		case done.ID:
			stats.DoneCount++
		}
	}
	return stats, nil
}

// Analytics builds the detailer dashboard over an inclusive date range:
// orders per day, per assigned employee, per client, and service view
// counters.
func (s *Service) Analytics(ctx context.Context, detailerID uuid.UUID, dateFrom, dateTo string) (*model.Analytics, error) {
	if !timeutil.IsISODate(dateFrom) || !timeutil.IsISODate(dateTo) {
		return nil, apperrors.Validation("Invalid date format, use YYYY-MM-DD")
	}
	from, _ := timeutil.ParseISO(dateFrom)
	to, _ := timeutil.ParseISO(dateTo)
	// Make the upper bound inclusive of the whole day.
	to = to.AddDate(0, 0, 1)

	services, err := s.services.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list detailer services: %w", err)
	}
	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
	}

	submissions, err := s.submissions.ListByServiceIDsInRange(ctx, serviceIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	byDay := map[string]int{}
	byEmployee := map[uuid.UUID]int{}
	byClient := map[uuid.UUID]int{}
	for _, sub := range submissions {
		byDay[sub.Date.Format(timeutil.DateFormat)]++
		if sub.EmployeeID != nil {
			byEmployee[*sub.EmployeeID]++
		}
		byClient[sub.UserID]++
	}

	analytics := &model.Analytics{
		Orders:    []model.DailyCount{},
		Employees: []model.EmployeeCount{},
		Clients:   []model.ClientCount{},
		Services:  []model.ServiceViews{},
	}

	for day, count := range byDay {
		analytics.Orders = append(analytics.Orders, model.DailyCount{Date: day, Count: count})
	}
	sort.Slice(analytics.Orders, func(i, j int) bool {
		return analytics.Orders[i].Date < analytics.Orders[j].Date
	})

	employeeByID, err := s.employeesByID(ctx, keys(byEmployee))
	if err != nil {
		return nil, err
	}
	for id, count := range byEmployee {
		name := ""
		if emp, ok := employeeByID[id]; ok {
			name = emp.FullName()
		}
		analytics.Employees = append(analytics.Employees, model.EmployeeCount{
			EmployeeID: id,
			Employee:   name,
			Count:      count,
		})
	}
	sort.Slice(analytics.Employees, func(i, j int) bool {
		if analytics.Employees[i].Count != analytics.Employees[j].Count {
			return analytics.Employees[i].Count > analytics.Employees[j].Count
		}
		return analytics.Employees[i].Employee < analytics.Employees[j].Employee
	})

	userByID, err := s.usersByID(ctx, keys(byClient))
	if err != nil {
		return nil, err
	}
	for id, count := range byClient {
		name := ""
		if user, ok := userByID[id]; ok {
			name = user.FullName()
		}
		analytics.Clients = append(analytics.Clients, model.ClientCount{
			ClientID: id,
			Client:   name,
			Count:    count,
		})
	}
	sort.Slice(analytics.Clients, func(i, j int) bool {
		if analytics.Clients[i].Count != analytics.Clients[j].Count {
			return analytics.Clients[i].Count > analytics.Clients[j].Count
		}
		return analytics.Clients[i].Client < analytics.Clients[j].Client
	})

	for _, svc := range services {
		analytics.Services = append(analytics.Services, model.ServiceViews{
			ServiceID: svc.ID,
			Service:   svc.Name,
			ViewCount: svc.ViewCount,
		})
	}
	sort.Slice(analytics.Services, func(i, j int) bool {
		return analytics.Services[i].ViewCount > analytics.Services[j].ViewCount
	})

	return analytics, nil
}

// Clients lists the distinct clients who ever booked one of the detailer's
// services.
func (s *Service) Clients(ctx context.Context, detailerID uuid.UUID) ([]model.ClientContact, error) {
	_, submissions, err := s.detailerScope(ctx, detailerID)
	if err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]struct{}{}
	userIDs := []uuid.UUID{}
	for _, sub := range submissions {
		if _, ok := seen[sub.UserID]; ok {
			continue
		}
		seen[sub.UserID] = struct{}{}
		userIDs = append(userIDs, sub.UserID)
	}

	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	contacts := make([]model.ClientContact, 0, len(users))
	for _, user := range users {
		contacts = append(contacts, model.ClientContact{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Phone:     user.Phone,
		})
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].LastName < contacts[j].LastName
	})
	return contacts, nil
}

// ClientSubmits lists one client's orders across the detailer's services.
// Unlike AllOrders, records with broken references stay in the listing with
// the unresolved fields left empty.
func (s *Service) ClientSubmits(ctx context.Context, detailerID, clientID uuid.UUID) ([]model.ClientOrder, error) {
	services, err := s.services.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list detailer services: %w", err)
	}
	serviceByID := make(map[uuid.UUID]*model.Service, len(services))
	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
		serviceIDs = append(serviceIDs, svc.ID)
	}

	submissions, err := s.submissions.ListByServiceIDsAndUser(ctx, serviceIDs, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	carIDs := make([]uuid.UUID, 0, len(submissions))
	statusIDs := make([]uuid.UUID, 0, len(submissions))
	employeeIDs := []uuid.UUID{}
	for _, sub := range submissions {
		carIDs = append(carIDs, sub.CarID)
		statusIDs = append(statusIDs, sub.StatusID)
		if sub.EmployeeID != nil {
			employeeIDs = append(employeeIDs, *sub.EmployeeID)
		}
	}

	carByID, err := s.carsByID(ctx, carIDs)
	if err != nil {
		return nil, err
	}
	statusByID, err := s.statusesByID(ctx, statusIDs)
	if err != nil {
		return nil, err
	}
	employeeByID, err := s.employeesByID(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}

	orders := make([]model.ClientOrder, 0, len(submissions))
	for _, sub := range submissions {
		order := model.ClientOrder{
			ID:       sub.ID,
			ClientID: sub.UserID,
			DueDate:  sub.Date.Format(timeutil.DateTimeFormat),
		}
		if service, ok := serviceByID[sub.ServiceID]; ok {
			order.ServiceID = service.ID
			order.ServiceName = service.Name
			order.ServicePrice = service.Price
		}
		if car, ok := carByID[sub.CarID]; ok {
			order.Car = car.DisplayName()
		}
		if status, ok := statusByID[sub.StatusID]; ok {
			order.Status = status.Name
		}
		if sub.EmployeeID != nil {
			if emp, ok := employeeByID[*sub.EmployeeID]; ok {
				order.Employee = emp.FullName()
			}
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *Service) usersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	users, err := s.users.ListByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	byID := make(map[uuid.UUID]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *Service) carsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Car, error) {
	cars, err := s.cars.ListByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Car, len(cars))
	for _, c := range cars {
		byID[c.ID] = c
	}
	return byID, nil
}

func (s *Service) employeesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Employee, error) {
	employees, err := s.employees.ListByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	return byID, nil
}

func (s *Service) statusesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.SubmitStatus, error) {
	statuses, err := s.statuses.ListByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	byID := make(map[uuid.UUID]*model.SubmitStatus, len(statuses))
	for _, st := range statuses {
		byID[st.ID] = st
	}
	return byID, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func keys(m map[uuid.UUID]int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
