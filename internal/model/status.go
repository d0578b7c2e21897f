package model

import "github.com/google/uuid"

// Well-known status names. The rows themselves live in the store and are
// resolved by name at request time, not by a fixed enumeration.
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusDone       = "done"
)

// SubmitStatus is the reference table of submission states.
type SubmitStatus struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
