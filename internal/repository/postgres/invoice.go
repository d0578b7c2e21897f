package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
)

const invoiceColumns = `id, number, detailer_id, first_name, last_name,
	   company_name, nip, street, city, zip_code, amount_netto, amount_brutto,
	   items, created_at, updated_at`

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	invoice.ID = uuid.New()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Numbers restart each year per detailer. An advisory lock keyed on
	// the detailer serializes competing allocations until commit.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, invoice.DetailerID); err != nil {
		return fmt.Errorf("failed to lock invoice sequence: %w", err)
	}

	numberQuery := `
		SELECT COALESCE(MAX(number), 0) + 1
		FROM invoices
		WHERE detailer_id = $1
		AND date_part('year', created_at) = date_part('year', $2::timestamptz)
	`
	if err := tx.GetContext(ctx, &invoice.Number, numberQuery, invoice.DetailerID, invoice.CreatedAt); err != nil {
		return fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	insertQuery := `
		INSERT INTO invoices (
			id, number, detailer_id, first_name, last_name, company_name,
			nip, street, city, zip_code, amount_netto, amount_brutto,
			items, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		invoice.ID,
		invoice.Number,
		invoice.DetailerID,
		invoice.FirstName,
		invoice.LastName,
		invoice.CompanyName,
		invoice.NIP,
		invoice.Street,
		invoice.City,
		invoice.ZipCode,
		invoice.AmountNetto,
		invoice.AmountBrutto,
		invoice.Items,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", translateErr(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetOwned(ctx context.Context, id, detailerID uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND detailer_id = $2`

	var invoice model.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, id, detailerID); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", translateErr(err))
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListByDetailer(ctx context.Context, detailerID uuid.UUID) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE detailer_id = $1 ORDER BY created_at DESC`

	var invoices []*model.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, detailerID); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete invoice: %w", repository.ErrNotFound)
	}
	return nil
}
