package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository/repotest"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
)

func request() model.CreateInvoiceRequest {
	return model.CreateInvoiceRequest{
		FirstName:    "Anna",
		LastName:     "Nowak",
		AmountNetto:  100,
		AmountBrutto: 123,
		Items: []model.InvoiceItem{
			{Name: "Wax", Quantity: 1, Netto: 100, VATRate: 23},
		},
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	svc := NewService(repotest.NewInvoiceRepo())
	detailerID := uuid.New()
	year := time.Now().Format("2006")

	first, err := svc.Create(context.Background(), detailerID, request())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), detailerID, request())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("FV/%s/0001", year), first.DisplayNumber())
	assert.Equal(t, fmt.Sprintf("FV/%s/0002", year), second.DisplayNumber())
}

func TestNumberingIsScopedPerDetailer(t *testing.T) {
	svc := NewService(repotest.NewInvoiceRepo())

	first, err := svc.Create(context.Background(), uuid.New(), request())
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), uuid.New(), request())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 1, other.Number)
}

func TestList(t *testing.T) {
	svc := NewService(repotest.NewInvoiceRepo())
	detailerID := uuid.New()

	created, err := svc.Create(context.Background(), detailerID, request())
	require.NoError(t, err)

	summaries, err := svc.List(context.Background(), detailerID)
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, created.ID, summaries[0].ID)
	assert.Equal(t, created.DisplayNumber(), summaries[0].Number)
	assert.Equal(t, 123.0, summaries[0].AmountBrutto)
}

func TestRemoveRequiresOwnership(t *testing.T) {
	repo := repotest.NewInvoiceRepo()
	svc := NewService(repo)
	detailerID := uuid.New()

	created, err := svc.Create(context.Background(), detailerID, request())
	require.NoError(t, err)

	err = svc.Remove(context.Background(), uuid.New(), created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	require.NoError(t, svc.Remove(context.Background(), detailerID, created.ID))
	assert.Empty(t, repo.Invoices)
}

func TestFormatInvoiceNumber(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "FV/2026/0007", model.FormatInvoiceNumber(createdAt, 7))
	assert.Equal(t, "FV/2026/1234", model.FormatInvoiceNumber(createdAt, 1234))
}
