package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
)

// capturePrinter records the last printed byte stream.
type capturePrinter struct {
	printed [][]byte
}

func (p *capturePrinter) Print(data []byte) error {
	p.printed = append(p.printed, data)
	return nil
}

func (p *capturePrinter) Close() error { return nil }

func (p *capturePrinter) IsConnected() bool { return true }

func TestFormatReceipt(t *testing.T) {
	r := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: "YAROTECH", Address: "Farm Center, Kano"},
		InvoiceNo: "INV-A1B2C3D4",
		Date:      "2025-03-10 14:30",
		SoldBy:    "Aisha Bello",
		Customer:  "Jalingo Ventures",
		Items: []entity.ReceiptItem{
			{Name: "Router", Quantity: 1, UnitPrice: 25000, Total: 25000},
			{Name: "Cable", Quantity: 4, UnitPrice: 500, Total: 2000},
		},
		Total: 27000,
	}

	data := string(FormatReceipt(r))

	assert.Contains(t, data, "YAROTECH")
	assert.Contains(t, data, "INV-A1B2C3D4")
	assert.Contains(t, data, "Aisha Bello")
	assert.Contains(t, data, "Jalingo Ventures")
	assert.Contains(t, data, "1x Router")
	assert.Contains(t, data, "4x Cable")
	// Multi-quantity lines show the unit price
	assert.Contains(t, data, "@ 500.00 each")
	assert.Contains(t, data, "27000.00")
}

func TestPrinterServicePrintSaleReceipt(t *testing.T) {
	ctx := context.Background()
	saleRepo := newFakeSaleRepo()
	printer := &capturePrinter{}
	svc := NewPrinterService(printer, saleRepo, entity.ReceiptHeader{StoreName: "YAROTECH"}, "usb")

	sale := &entity.Sale{
		UserID:       uuid.New(),
		CustomerName: "Walk-in",
		IssuerName:   "Aisha Bello",
		SaleDate:     time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Total:        2500000,
		Items: []entity.SaleItem{
			{ProductName: "Router", Quantity: 1, Price: 2500000, Total: 2500000},
		},
	}
	require.NoError(t, saleRepo.CreateWithItems(ctx, sale))

	t.Run("prints the owner's sale", func(t *testing.T) {
		receipt, err := svc.PrintSaleReceipt(ctx, sale.UserID, sale.ID, false)
		require.NoError(t, err)

		assert.Equal(t, sale.InvoiceNo, receipt.InvoiceNo)
		assert.Equal(t, "Walk-in", receipt.Customer)
		assert.Equal(t, 25000.0, receipt.Total)
		require.Len(t, printer.printed, 1)
		assert.Contains(t, string(printer.printed[0]), "1x Router")
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		_, err := svc.PrintSaleReceipt(ctx, uuid.New(), sale.ID, false)
		require.Error(t, err)
	})

	t.Run("status reflects configuration", func(t *testing.T) {
		status := svc.GetStatus()
		assert.True(t, status.Configured)
		assert.True(t, status.Connected)
		assert.Equal(t, "usb", status.Type)
	})
}
