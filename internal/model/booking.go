package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a concrete booking of one schedule instance on one calendar
// date. The store enforces uniqueness of (schedule_id, date), which is the
// double-booking guard of last resort.
type Submission struct {
	Base
	Date       time.Time  `json:"date" db:"date"`
	ScheduleID uuid.UUID  `json:"schedule_id" db:"schedule_id"`
	ServiceID  uuid.UUID  `json:"service_id" db:"service_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	CarID      uuid.UUID  `json:"car_id" db:"car_id"`
	StatusID   uuid.UUID  `json:"status_id" db:"status_id"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty" db:"employee_id"`
}

type SubmitScheduleRequest struct {
	ServiceID string `json:"service_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	CarID     string `json:"car_id" binding:"required,uuid"`
}

type RescheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	CarID string `json:"car_id" binding:"required,uuid"`
}

type AssignEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type SetStatusRequest struct {
	StatusID string `json:"status_id" binding:"required,uuid"`
}

// Slot is a computed bookable window, shaped for the booking calendar widget.
type Slot struct {
	Text      string `json:"text"`
	Start     string `json:"start"`
	End       string `json:"end"`
	BackColor string `json:"backColor"`
}

// ClientSubmission is the client-facing projection of an upcoming booking.
type ClientSubmission struct {
	SubmitID     uuid.UUID `json:"submit_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`
	ServiceImage string    `json:"service_image"`
	Date         time.Time `json:"date"`
	CarID        uuid.UUID `json:"car_id"`
	CarName      string    `json:"car_name"`
}
