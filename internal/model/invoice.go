package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Invoice is a billing record owned by a detailer. Number is a
// detailer-scoped sequence that restarts every calendar year; the display
// form combines it with the creation year.
type Invoice struct {
	Base
	Number       int             `json:"-" db:"number"`
	DetailerID   uuid.UUID       `json:"detailer_id" db:"detailer_id"`
	FirstName    string          `json:"first_name" db:"first_name"`
	LastName     string          `json:"last_name" db:"last_name"`
	CompanyName  string          `json:"company_name" db:"company_name"`
	NIP          string          `json:"nip" db:"nip"`
	Street       string          `json:"street" db:"street"`
	City         string          `json:"city" db:"city"`
	ZipCode      string          `json:"zip_code" db:"zip_code"`
	AmountNetto  float64         `json:"amount_netto" db:"amount_netto"`
	AmountBrutto float64         `json:"amount_brutto" db:"amount_brutto"`
	Items        json.RawMessage `json:"items" db:"items"`
}

// DisplayNumber renders the invoice number in its FV/<year>/<seq> form.
func (i *Invoice) DisplayNumber() string {
	return FormatInvoiceNumber(i.CreatedAt, i.Number)
}

func FormatInvoiceNumber(createdAt time.Time, number int) string {
	return fmt.Sprintf("FV/%s/%04d", createdAt.Format("2006"), number)
}

type InvoiceItem struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Netto    float64 `json:"netto" binding:"required,gte=0"`
	VATRate  float64 `json:"vat_rate" binding:"gte=0"`
}

type CreateInvoiceRequest struct {
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	CompanyName  string        `json:"company_name"`
	NIP          string        `json:"nip" binding:"omitempty,max=11"`
	Street       string        `json:"street"`
	City         string        `json:"city"`
	ZipCode      string        `json:"zip_code"`
	AmountNetto  float64       `json:"amount_netto" binding:"gte=0"`
	AmountBrutto float64       `json:"amount_brutto" binding:"gte=0"`
	Items        []InvoiceItem `json:"items" binding:"required,min=1,dive"`
}

// InvoiceSummary is the list-view projection with the formatted number.
type InvoiceSummary struct {
	ID           uuid.UUID `json:"id"`
	DateCreated  time.Time `json:"date_created"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	AmountBrutto float64   `json:"amount_brutto"`
	Number       string    `json:"number"`
}
