package model

import "github.com/google/uuid"

// RoleName is the closed set of roles the platform understands. Roles are
// resolved from the store once at the boundary and passed around as typed
// values, never as raw strings.
type RoleName string

const (
	RoleDetailer RoleName = "detailer"
	RoleClient   RoleName = "client"
)

func (r RoleName) Valid() bool {
	return r == RoleDetailer || r == RoleClient
}

// Role is the reference-table row backing a RoleName.
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        RoleName  `json:"name" db:"name"`
	DisplayName string    `json:"display_name" db:"display_name"`
}
