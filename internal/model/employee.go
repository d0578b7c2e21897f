package model

import "github.com/google/uuid"

// Employee belongs to a detailer and can be assigned to submissions.
// Soft-deleted like cars.
type Employee struct {
	Base
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Description string    `json:"description" db:"description"`
	Experience  string    `json:"experience" db:"experience"`
	DetailerID  uuid.UUID `json:"detailer_id" db:"detailer_id"`
	IsRemoved   bool      `json:"-" db:"is_removed"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type AddEmployeeRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Description string `json:"description"`
	Experience  string `json:"experience"`
}
