package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/pkg/apperror"
	"github.com/yarotech/pos-api/pkg/email"
	"github.com/yarotech/pos-api/pkg/invoice"
)

func newInvoiceFixture(t *testing.T) (*InvoiceService, *fakeSaleRepo, *entity.Sale) {
	t.Helper()

	saleRepo := newFakeSaleRepo()
	renderer := invoice.NewRenderer(invoice.Branding{
		CompanyName: "YAROTECH NETWORK LIMITED",
		Currency:    "NGN",
	})
	svc := NewInvoiceService(saleRepo, renderer, email.NewEmailService(email.EmailConfig{}))

	sale := &entity.Sale{
		UserID:       uuid.New(),
		CustomerName: "Jalingo Ventures",
		IssuerName:   "Aisha Bello",
		SaleDate:     time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Total:        3750000,
		Items: []entity.SaleItem{
			{ProductName: "Router", Quantity: 1, Price: 2500000, Total: 2500000, Position: 0},
			{ProductName: "Switch", Quantity: 1, Price: 1250000, Total: 1250000, Position: 1},
		},
	}
	require.NoError(t, saleRepo.CreateWithItems(context.Background(), sale))

	return svc, saleRepo, sale
}

func TestInvoiceServiceGetInvoice(t *testing.T) {
	ctx := context.Background()
	svc, _, sale := newInvoiceFixture(t)

	t.Run("projects the persisted sale", func(t *testing.T) {
		inv, err := svc.GetInvoice(ctx, sale.UserID, sale.ID, false)
		require.NoError(t, err)

		assert.Equal(t, sale.InvoiceNo, inv.InvoiceNo)
		assert.Equal(t, "Jalingo Ventures", inv.CustomerName)
		assert.Equal(t, int64(3750000), inv.Total)
		require.Len(t, inv.Items, 2)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		_, err := svc.GetInvoice(ctx, uuid.New(), sale.ID, false)
		require.Error(t, err)
		assert.Equal(t, 403, apperror.GetAppError(err).Code)
	})

	t.Run("audit access is allowed", func(t *testing.T) {
		_, err := svc.GetInvoice(ctx, uuid.New(), sale.ID, true)
		require.NoError(t, err)
	})

	t.Run("missing sale is a 404", func(t *testing.T) {
		_, err := svc.GetInvoice(ctx, sale.UserID, uuid.New(), false)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestInvoiceServiceRenderPDF(t *testing.T) {
	ctx := context.Background()
	svc, _, sale := newInvoiceFixture(t)

	pdf, filename, err := svc.RenderPDF(ctx, sale.UserID, sale.ID, false)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Equal(t, "invoice-"+sale.InvoiceNo+".pdf", filename)

	// Re-rendering the same sale yields the same document
	again, _, err := svc.RenderPDF(ctx, sale.UserID, sale.ID, false)
	require.NoError(t, err)
	assert.Equal(t, pdf, again)
}
