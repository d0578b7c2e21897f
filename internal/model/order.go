package model

import "github.com/google/uuid"

// Order is the detailer-facing join of a submission with its client, car,
// service and status. Only fully resolved records make it into the all-orders
// listing.
type Order struct {
	ID             uuid.UUID  `json:"id"`
	ClientID       uuid.UUID  `json:"client_id"`
	ClientPhone    string     `json:"client_phone"`
	ClientFullName string     `json:"client_full_name"`
	Car            string     `json:"car"`
	ServiceID      uuid.UUID  `json:"service_id"`
	ServiceName    string     `json:"service_name"`
	ServicePrice   float64    `json:"service_price"`
	DueDate        string     `json:"due_date"`
	StatusID       uuid.UUID  `json:"status_id"`
	EmployeeID     *uuid.UUID `json:"employee_id,omitempty"`
}

// ClientOrder is the per-client variant: weak references render as empty
// fields instead of dropping the record.
type ClientOrder struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	Car          string    `json:"car"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`
	DueDate      string    `json:"due_date"`
	Status       string    `json:"status"`
	Employee     string    `json:"employee"`
}

// OrderStats is the dashboard card: submission counts per status across a
// detailer's services.
type OrderStats struct {
	PendingCount    int `json:"pending_count"`
	InProgressCount int `json:"in_progress_count"`
	DoneCount       int `json:"done_count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type EmployeeCount struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Employee   string    `json:"employee"`
	Count      int       `json:"count"`
}

type ClientCount struct {
	ClientID uuid.UUID `json:"client_id"`
	Client   string    `json:"client"`
	Count    int       `json:"count"`
}

type ServiceViews struct {
	ServiceID uuid.UUID `json:"service_id"`
	Service   string    `json:"service"`
	ViewCount int       `json:"view_count"`
}

// Analytics is the detailer analytics view over a date range.
type Analytics struct {
	Orders    []DailyCount    `json:"orders"`
	Employees []EmployeeCount `json:"employees"`
	Clients   []ClientCount   `json:"clients"`
	Services  []ServiceViews  `json:"services"`
}

// ClientContact is a row in the detailer's client list.
type ClientContact struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
}
