package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/yarotech/pos-api/pkg/apperror"
)

// InvoiceItem represents a single row of the invoice line-item table.
type InvoiceItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"` // Unit price in cents
	Total       int64  `json:"total"` // Line total in cents
}

// Invoice is a value object projected from one sale for rendering. It is NOT
// a database entity; it is recomputed from the persisted sale on every
// render request and never stored.
type Invoice struct {
	SaleID        uuid.UUID     `json:"sale_id"`
	InvoiceNo     string        `json:"invoice_no"`
	Date          time.Time     `json:"date"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	IssuerName    string        `json:"issuer_name"`
	Items         []InvoiceItem `json:"items"`
	Total         int64         `json:"total"` // Grand total in cents
}

// NewInvoice projects a sale (loaded with its customer and items) into an
// invoice. It fails if the sale is missing the data rendering cannot proceed
// without; optional fields degrade to placeholders in the renderer instead.
func NewInvoice(sale *Sale) (*Invoice, error) {
	if sale == nil || sale.ID == uuid.Nil {
		return nil, apperror.NewUnprocessableError("Invoice is missing required data: sale ID")
	}
	if len(sale.Items) == 0 {
		return nil, apperror.NewUnprocessableError("Invoice is missing required data: sale has no line items")
	}

	inv := &Invoice{
		SaleID:       sale.ID,
		InvoiceNo:    sale.InvoiceNo,
		Date:         sale.SaleDate,
		CustomerName: sale.BillToName(),
		IssuerName:   sale.IssuerName,
		Items:        make([]InvoiceItem, 0, len(sale.Items)),
		Total:        sale.Total,
	}
	if inv.InvoiceNo == "" {
		inv.InvoiceNo = DeriveInvoiceNo(sale.ID.String())
	}
	if sale.Customer != nil && sale.Customer.Email != nil {
		inv.CustomerEmail = *sale.Customer.Email
	}

	for _, item := range sale.Items {
		inv.Items = append(inv.Items, InvoiceItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}

	return inv, nil
}

// Filename returns the download filename for the rendered document.
func (inv *Invoice) Filename() string {
	return "invoice-" + inv.InvoiceNo + ".pdf"
}
