package model

import (
	"github.com/google/uuid"
)

// Service is a detailing offering owned by a detailer.
type Service struct {
	Base
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	DetailerID  uuid.UUID `json:"detailer_id" db:"detailer_id"`
	// Duration of one appointment, in minutes.
	Duration   int    `json:"duration" db:"duration"`
	LabelColor string `json:"label_color" db:"label_color"`
	ViewCount  int    `json:"view_count" db:"view_count"`
}

const DefaultLabelColor = "#6aa84f"

type ServiceDay struct {
	// Day of week, Monday=1 through Sunday=7.
	Day int `json:"day" binding:"required,min=1,max=7"`
	// Time of day in HH:MM:SS form.
	Time string `json:"time" binding:"required,clocktime"`
}

type CreateServiceRequest struct {
	Name        string       `json:"name" binding:"required,max=100"`
	Price       float64      `json:"price" binding:"required,gt=0"`
	Description string       `json:"description"`
	Duration    int          `json:"duration" binding:"required,gt=0"`
	LabelColor  string       `json:"label_color" binding:"omitempty,max=10"`
	ImageFile   string       `json:"image_file"`
	ServiceDays []ServiceDay `json:"service_days" binding:"omitempty,dive"`
}
