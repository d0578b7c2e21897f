package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// Schedule is a recurring weekly slot offered for a service: a day of week
// plus a time of day. Instances of it on concrete dates are booked through
// Submission records.
type Schedule struct {
	Base
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	// DayOfWeek is Monday=1 through Sunday=7.
	DayOfWeek int `json:"day_of_week" db:"day_of_week"`
	// TimeOfDay is the slot start in HH:MM:SS form.
	TimeOfDay string `json:"time" db:"time_of_day"`
}

// Clock parses the schedule's time of day.
func (s *Schedule) Clock() (time.Time, error) {
	return time.Parse(timeutil.ClockFormat, s.TimeOfDay)
}
