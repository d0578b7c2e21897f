package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

// Service manages detailer invoices. Sequential numbering is allocated
// inside the repository transaction; this layer shapes requests and
// projections.
type Service struct {
	invoices repository.InvoiceRepository
}

func NewService(invoices repository.InvoiceRepository) *Service {
	return &Service{invoices: invoices}
}

func (s *Service) Create(ctx context.Context, detailerID uuid.UUID, req model.CreateInvoiceRequest) (*model.Invoice, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice items: %w", err)
	}

	invoice := &model.Invoice{
		DetailerID:   detailerID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyName:  req.CompanyName,
		NIP:          req.NIP,
		Street:       req.Street,
		City:         req.City,
		ZipCode:      req.ZipCode,
		AmountNetto:  req.AmountNetto,
		AmountBrutto: req.AmountBrutto,
		Items:        items,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, detailerID uuid.UUID) ([]model.InvoiceSummary, error) {
	invoices, err := s.invoices.ListByDetailer(ctx, detailerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	summaries := make([]model.InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		summaries = append(summaries, model.InvoiceSummary{
			ID:           inv.ID,
			DateCreated:  inv.CreatedAt,
			FirstName:    inv.FirstName,
			LastName:     inv.LastName,
			AmountBrutto: inv.AmountBrutto,
			Number:       inv.DisplayNumber(),
		})
	}
	return summaries, nil
}

func (s *Service) Get(ctx context.Context, detailerID, invoiceID uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoices.GetOwned(ctx, invoiceID, detailerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Invoice")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// Remove deletes an invoice after verifying ownership. Numbers are never
// reallocated, so a removed invoice leaves a gap in the sequence.
func (s *Service) Remove(ctx context.Context, detailerID, invoiceID uuid.UUID) error {
	invoice, err := s.invoices.GetOwned(ctx, invoiceID, detailerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Invoice")
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoices.Delete(ctx, invoice.ID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
