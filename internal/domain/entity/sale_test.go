package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveInvoiceNo(t *testing.T) {
	t.Run("uses the first eight characters uppercased", func(t *testing.T) {
		got := DeriveInvoiceNo("a1b2c3d4-0000-0000-0000-000000000000")
		assert.Equal(t, "INV-A1B2C3D4", got)
	})

	t.Run("same sale always derives the same number", func(t *testing.T) {
		id := uuid.New().String()
		assert.Equal(t, DeriveInvoiceNo(id), DeriveInvoiceNo(id))
	})

	t.Run("short identifiers are used whole", func(t *testing.T) {
		assert.Equal(t, "INV-ABC", DeriveInvoiceNo("abc"))
	})
}

func TestSaleBillToName(t *testing.T) {
	t.Run("prefers the linked customer", func(t *testing.T) {
		s := Sale{
			CustomerName: "Snapshot Name",
			Customer:     &Customer{Name: "Customer Record"},
		}
		assert.Equal(t, "Customer Record", s.BillToName())
	})

	t.Run("falls back to the free-text snapshot", func(t *testing.T) {
		s := Sale{CustomerName: "Walk-in"}
		assert.Equal(t, "Walk-in", s.BillToName())
	})
}

func TestSaleMarshalJSON(t *testing.T) {
	s := Sale{
		ID:        uuid.New(),
		Total:     3750000,
		InvoiceNo: "INV-A1B2C3D4",
		Items: []SaleItem{
			{ProductName: "Router", Quantity: 1, Price: 2500000, Total: 2500000},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	// Cents become decimals on the wire
	assert.Equal(t, 37500.0, out["total"])

	items, ok := out["items"].([]any)
	require.True(t, ok)
	item := items[0].(map[string]any)
	assert.Equal(t, 25000.0, item["price"])
	assert.Equal(t, 25000.0, item["total"])
}

func TestNewInvoice(t *testing.T) {
	saleID := uuid.New()
	email := "customer@example.com"
	sale := &Sale{
		ID:         saleID,
		InvoiceNo:  DeriveInvoiceNo(saleID.String()),
		SaleDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		IssuerName: "Aisha Bello",
		Total:      3750000,
		Customer:   &Customer{Name: "Jalingo Ventures", Email: &email},
		Items: []SaleItem{
			{ProductName: "Router", Quantity: 1, Price: 2500000, Total: 2500000, Position: 0},
			{ProductName: "Switch", Quantity: 1, Price: 1250000, Total: 1250000, Position: 1},
		},
	}

	t.Run("projects the sale", func(t *testing.T) {
		inv, err := NewInvoice(sale)
		require.NoError(t, err)

		assert.Equal(t, saleID, inv.SaleID)
		assert.Equal(t, sale.InvoiceNo, inv.InvoiceNo)
		assert.Equal(t, "Jalingo Ventures", inv.CustomerName)
		assert.Equal(t, "customer@example.com", inv.CustomerEmail)
		assert.Equal(t, int64(3750000), inv.Total)
		require.Len(t, inv.Items, 2)
		assert.Equal(t, "Router", inv.Items[0].ProductName)
	})

	t.Run("fails without line items", func(t *testing.T) {
		bare := *sale
		bare.Items = nil
		_, err := NewInvoice(&bare)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no line items")
	})

	t.Run("fails without a sale", func(t *testing.T) {
		_, err := NewInvoice(nil)
		require.Error(t, err)
	})

	t.Run("derives a missing invoice number", func(t *testing.T) {
		derived := *sale
		derived.InvoiceNo = ""
		inv, err := NewInvoice(&derived)
		require.NoError(t, err)
		assert.Equal(t, DeriveInvoiceNo(saleID.String()), inv.InvoiceNo)
	})

	t.Run("filename embeds the invoice number", func(t *testing.T) {
		inv, err := NewInvoice(sale)
		require.NoError(t, err)
		assert.Equal(t, "invoice-"+sale.InvoiceNo+".pdf", inv.Filename())
	})
}
