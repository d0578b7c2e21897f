package model

import "github.com/google/uuid"

// Car belongs to a client. Cars are soft-deleted so past submissions keep a
// resolvable reference.
type Car struct {
	Base
	Manufacturer     string    `json:"manufacturer" db:"manufacturer"`
	Model            string    `json:"model" db:"model"`
	YearOfProduction int       `json:"year_of_production" db:"year_of_production"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	IsRemoved        bool      `json:"-" db:"is_removed"`
}

// DisplayName is the "manufacturer model" label used across order listings.
func (c *Car) DisplayName() string {
	return c.Manufacturer + " " + c.Model
}

type AddCarRequest struct {
	Manufacturer     string `json:"manufacturer" binding:"required,max=50"`
	Model            string `json:"model" binding:"required,max=50"`
	YearOfProduction int    `json:"year_of_production" binding:"required,gte=1900"`
}
