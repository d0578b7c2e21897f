// Package repotest provides in-memory repository implementations for unit
// tests. They mirror the Postgres layer's contract: sentinel errors, the
// (schedule, date) uniqueness constraint, and soft-delete visibility rules.
package repotest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
)

func stamp(b *model.Base) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type UserRepo struct {
	Users map[uuid.UUID]*model.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Users: map[uuid.UUID]*model.User{}}
}

func (r *UserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.Users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	stamp(&user.Base)
	r.Users[user.ID] = user
	return nil
}

func (r *UserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.Users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.Users[user.ID] = user
	return nil
}

func (r *UserRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := r.Users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type RoleRepo struct {
	Roles map[uuid.UUID]*model.Role
}

func NewRoleRepo(roles ...*model.Role) *RoleRepo {
	r := &RoleRepo{Roles: map[uuid.UUID]*model.Role{}}
	for _, role := range roles {
		r.Roles[role.ID] = role
	}
	return r
}

func (r *RoleRepo) Get(_ context.Context, id uuid.UUID) (*model.Role, error) {
	role, ok := r.Roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return role, nil
}

func (r *RoleRepo) GetByName(_ context.Context, name model.RoleName) (*model.Role, error) {
	for _, role := range r.Roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, repository.ErrNotFound
}

type ServiceRepo struct {
	Services map[uuid.UUID]*model.Service
}

func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{Services: map[uuid.UUID]*model.Service{}}
}

func (r *ServiceRepo) Create(_ context.Context, service *model.Service) error {
	stamp(&service.Base)
	r.Services[service.ID] = service
	return nil
}

func (r *ServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	service, ok := r.Services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return service, nil
}

func (r *ServiceRepo) List(_ context.Context) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range r.Services {
		out = append(out, s)
	}
	return out, nil
}

func (r *ServiceRepo) ListByDetailer(_ context.Context, detailerID uuid.UUID) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range r.Services {
		if s.DetailerID == detailerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ServiceRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	service, ok := r.Services[id]
	if !ok {
		return repository.ErrNotFound
	}
	service.ViewCount++
	return nil
}

type ScheduleRepo struct {
	Schedules map[uuid.UUID]*model.Schedule
}

func NewScheduleRepo() *ScheduleRepo {
	return &ScheduleRepo{Schedules: map[uuid.UUID]*model.Schedule{}}
}

func (r *ScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	stamp(&schedule.Base)
	r.Schedules[schedule.ID] = schedule
	return nil
}

func (r *ScheduleRepo) Get(_ context.Context, id uuid.UUID) (*model.Schedule, error) {
	schedule, ok := r.Schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return schedule, nil
}

func (r *ScheduleRepo) ListByServiceAndDay(_ context.Context, serviceID uuid.UUID, dayOfWeek int) ([]*model.Schedule, error) {
	var out []*model.Schedule
	for _, s := range r.Schedules {
		if s.ServiceID == serviceID && s.DayOfWeek == dayOfWeek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ScheduleRepo) GetByServiceAndTime(_ context.Context, serviceID uuid.UUID, timeOfDay string) (*model.Schedule, error) {
	for _, s := range r.Schedules {
		if s.ServiceID == serviceID && s.TimeOfDay == timeOfDay {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

type SubmissionRepo struct {
	Submissions map[uuid.UUID]*model.Submission
}

func NewSubmissionRepo() *SubmissionRepo {
	return &SubmissionRepo{Submissions: map[uuid.UUID]*model.Submission{}}
}

func (r *SubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	for _, s := range r.Submissions {
		if s.ScheduleID == submission.ScheduleID && sameDate(s.Date, submission.Date) {
			return repository.ErrDuplicate
		}
	}
	stamp(&submission.Base)
	r.Submissions[submission.ID] = submission
	return nil
}

func (r *SubmissionRepo) Get(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	submission, ok := r.Submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return submission, nil
}

func (r *SubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	if _, ok := r.Submissions[submission.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, s := range r.Submissions {
		if s.ID != submission.ID && s.ScheduleID == submission.ScheduleID && sameDate(s.Date, submission.Date) {
			return repository.ErrDuplicate
		}
	}
	submission.UpdatedAt = time.Now()
	r.Submissions[submission.ID] = submission
	return nil
}

func (r *SubmissionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.Submissions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.Submissions, id)
	return nil
}

func (r *SubmissionRepo) ExistsOnDate(_ context.Context, scheduleID uuid.UUID, date time.Time) (bool, error) {
	for _, s := range r.Submissions {
		if s.ScheduleID == scheduleID && sameDate(s.Date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *SubmissionRepo) ListFutureByUser(_ context.Context, userID uuid.UUID, after time.Time) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range r.Submissions {
		if s.UserID == userID && s.Date.After(after) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) ListByServiceIDs(_ context.Context, serviceIDs []uuid.UUID) ([]*model.Submission, error) {
	ids := map[uuid.UUID]struct{}{}
	for _, id := range serviceIDs {
		ids[id] = struct{}{}
	}
	var out []*model.Submission
	for _, s := range r.Submissions {
		if _, ok := ids[s.ServiceID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) ListByServiceIDsAndUser(ctx context.Context, serviceIDs []uuid.UUID, userID uuid.UUID) ([]*model.Submission, error) {
	all, _ := r.ListByServiceIDs(ctx, serviceIDs)
	var out []*model.Submission
	for _, s := range all {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) ListByServiceIDsInRange(ctx context.Context, serviceIDs []uuid.UUID, from, to time.Time) ([]*model.Submission, error) {
	all, _ := r.ListByServiceIDs(ctx, serviceIDs)
	var out []*model.Submission
	for _, s := range all {
		if !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) ExistsFutureByCar(_ context.Context, carID uuid.UUID, after time.Time) (bool, error) {
	for _, s := range r.Submissions {
		if s.CarID == carID && s.Date.After(after) {
			return true, nil
		}
	}
	return false, nil
}

type CarRepo struct {
	Cars map[uuid.UUID]*model.Car
}

func NewCarRepo() *CarRepo {
	return &CarRepo{Cars: map[uuid.UUID]*model.Car{}}
}

func (r *CarRepo) Create(_ context.Context, car *model.Car) error {
	stamp(&car.Base)
	r.Cars[car.ID] = car
	return nil
}

func (r *CarRepo) Get(_ context.Context, id uuid.UUID) (*model.Car, error) {
	car, ok := r.Cars[id]
	if !ok || car.IsRemoved {
		return nil, repository.ErrNotFound
	}
	return car, nil
}

func (r *CarRepo) GetOwned(_ context.Context, id, userID uuid.UUID) (*model.Car, error) {
	car, ok := r.Cars[id]
	if !ok || car.IsRemoved || car.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return car, nil
}

func (r *CarRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*model.Car, error) {
	var out []*model.Car
	for _, c := range r.Cars {
		if c.UserID == userID && !c.IsRemoved {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListByIDs includes soft-deleted cars so historical joins still resolve.
func (r *CarRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Car, error) {
	var out []*model.Car
	for _, id := range ids {
		if c, ok := r.Cars[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CarRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	car, ok := r.Cars[id]
	if !ok {
		return repository.ErrNotFound
	}
	car.IsRemoved = true
	return nil
}

type EmployeeRepo struct {
	Employees map[uuid.UUID]*model.Employee
}

func NewEmployeeRepo() *EmployeeRepo {
	return &EmployeeRepo{Employees: map[uuid.UUID]*model.Employee{}}
}

func (r *EmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	stamp(&employee.Base)
	r.Employees[employee.ID] = employee
	return nil
}

func (r *EmployeeRepo) Get(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	employee, ok := r.Employees[id]
	if !ok || employee.IsRemoved {
		return nil, repository.ErrNotFound
	}
	return employee, nil
}

func (r *EmployeeRepo) GetOwned(_ context.Context, id, detailerID uuid.UUID) (*model.Employee, error) {
	employee, ok := r.Employees[id]
	if !ok || employee.IsRemoved || employee.DetailerID != detailerID {
		return nil, repository.ErrNotFound
	}
	return employee, nil
}

func (r *EmployeeRepo) ListByDetailer(_ context.Context, detailerID uuid.UUID) ([]*model.Employee, error) {
	var out []*model.Employee
	for _, e := range r.Employees {
		if e.DetailerID == detailerID && !e.IsRemoved {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Employee, error) {
	var out []*model.Employee
	for _, id := range ids {
		if e, ok := r.Employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	employee, ok := r.Employees[id]
	if !ok {
		return repository.ErrNotFound
	}
	employee.IsRemoved = true
	return nil
}

type StatusRepo struct {
	Statuses map[uuid.UUID]*model.SubmitStatus
}

func NewStatusRepo(names ...string) *StatusRepo {
	r := &StatusRepo{Statuses: map[uuid.UUID]*model.SubmitStatus{}}
	for _, name := range names {
		status := &model.SubmitStatus{ID: uuid.New(), Name: name}
		r.Statuses[status.ID] = status
	}
	return r
}

func (r *StatusRepo) ByName(name string) *model.SubmitStatus {
	for _, s := range r.Statuses {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (r *StatusRepo) Get(_ context.Context, id uuid.UUID) (*model.SubmitStatus, error) {
	status, ok := r.Statuses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return status, nil
}

func (r *StatusRepo) GetByName(_ context.Context, name string) (*model.SubmitStatus, error) {
	if status := r.ByName(name); status != nil {
		return status, nil
	}
	return nil, repository.ErrNotFound
}

func (r *StatusRepo) List(_ context.Context) ([]*model.SubmitStatus, error) {
	var out []*model.SubmitStatus
	for _, s := range r.Statuses {
		out = append(out, s)
	}
	return out, nil
}

func (r *StatusRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.SubmitStatus, error) {
	var out []*model.SubmitStatus
	for _, id := range ids {
		if s, ok := r.Statuses[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type InvoiceRepo struct {
	Invoices map[uuid.UUID]*model.Invoice
}

func NewInvoiceRepo() *InvoiceRepo {
	return &InvoiceRepo{Invoices: map[uuid.UUID]*model.Invoice{}}
}

func (r *InvoiceRepo) Create(_ context.Context, invoice *model.Invoice) error {
	stamp(&invoice.Base)
	next := 1
	for _, inv := range r.Invoices {
		if inv.DetailerID == invoice.DetailerID && inv.CreatedAt.Year() == invoice.CreatedAt.Year() && inv.Number >= next {
			next = inv.Number + 1
		}
	}
	invoice.Number = next
	r.Invoices[invoice.ID] = invoice
	return nil
}

func (r *InvoiceRepo) GetOwned(_ context.Context, id, detailerID uuid.UUID) (*model.Invoice, error) {
	invoice, ok := r.Invoices[id]
	if !ok || invoice.DetailerID != detailerID {
		return nil, repository.ErrNotFound
	}
	return invoice, nil
}

func (r *InvoiceRepo) ListByDetailer(_ context.Context, detailerID uuid.UUID) ([]*model.Invoice, error) {
	var out []*model.Invoice
	for _, inv := range r.Invoices {
		if inv.DetailerID == detailerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.Invoices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.Invoices, id)
	return nil
}

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.RoleRepository       = (*RoleRepo)(nil)
	_ repository.ServiceRepository    = (*ServiceRepo)(nil)
	_ repository.ScheduleRepository   = (*ScheduleRepo)(nil)
	_ repository.SubmissionRepository = (*SubmissionRepo)(nil)
	_ repository.CarRepository        = (*CarRepo)(nil)
	_ repository.EmployeeRepository   = (*EmployeeRepo)(nil)
	_ repository.StatusRepository     = (*StatusRepo)(nil)
	_ repository.InvoiceRepository    = (*InvoiceRepo)(nil)
)
