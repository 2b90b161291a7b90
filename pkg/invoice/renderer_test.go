package invoice

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
)

func testBranding() Branding {
	return Branding{
		CompanyName: "YAROTECH NETWORK LIMITED",
		Address:     "No. 122 Lukoro Plaza A, Farm Center, Kano State",
		Phone:       "+234 XXX XXX XXXX",
		Email:       "info@yarotech.com.ng",
		Currency:    "NGN",
	}
}

func testInvoice(itemCount int) *entity.Invoice {
	id := uuid.MustParse("a1b2c3d4-1111-2222-3333-444455556666")
	inv := &entity.Invoice{
		SaleID:       id,
		InvoiceNo:    "INV-A1B2C3D4",
		Date:         time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		CustomerName: "Jalingo Ventures",
		IssuerName:   "Aisha Bello",
	}
	for i := 0; i < itemCount; i++ {
		price := int64((i + 1) * 100000)
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ProductName: fmt.Sprintf("Item %d", i+1),
			Quantity:    1,
			Price:       price,
			Total:       price,
		})
		inv.Total += price
	}
	return inv
}

// countPages counts page objects in the raw PDF, excluding the page tree node.
func countPages(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
}

func TestRendererRender(t *testing.T) {
	r := NewRenderer(testBranding())

	t.Run("produces a PDF document", func(t *testing.T) {
		pdf, err := r.Render(testInvoice(3))
		require.NoError(t, err)
		require.NotEmpty(t, pdf)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	})

	t.Run("repeated renders yield identical bytes", func(t *testing.T) {
		inv := testInvoice(3)
		first, err := r.Render(inv)
		require.NoError(t, err)

		// Several rounds so unstable map-ordered output cannot pass by luck.
		for i := 0; i < 8; i++ {
			again, err := r.Render(inv)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("long item lists paginate", func(t *testing.T) {
		short, err := r.Render(testInvoice(2))
		require.NoError(t, err)
		long, err := r.Render(testInvoice(40))
		require.NoError(t, err)

		assert.Equal(t, 1, countPages(short))
		assert.Greater(t, countPages(long), 1)
	})

	t.Run("missing sale ID fails", func(t *testing.T) {
		inv := testInvoice(1)
		inv.SaleID = uuid.Nil
		_, err := r.Render(inv)
		require.Error(t, err)
	})

	t.Run("missing items fail", func(t *testing.T) {
		inv := testInvoice(1)
		inv.Items = nil
		_, err := r.Render(inv)
		require.Error(t, err)
	})

	t.Run("nil invoice fails", func(t *testing.T) {
		_, err := r.Render(nil)
		require.Error(t, err)
	})

	t.Run("renders without a logo", func(t *testing.T) {
		bare := testBranding()
		bare.Logo = nil
		pdf, err := NewRenderer(bare).Render(testInvoice(1))
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)
	})
}

func TestNewRendererDefaults(t *testing.T) {
	b := testBranding()
	b.Currency = ""
	b.ThankYou = ""
	r := NewRenderer(b)

	assert.Equal(t, "NGN", r.branding.Currency)
	assert.Contains(t, r.branding.ThankYou, "YAROTECH NETWORK LIMITED")
}
