package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/pkg/apperror"
)

// SaleLine is a draft line item inside a SaleBuilder. Product name and unit
// price are snapshots; once a line is filled in, catalog changes no longer
// affect it.
type SaleLine struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	Price       int64      `json:"price"` // Unit price in cents
}

// Total returns the line total in cents.
func (l *SaleLine) Total() int64 {
	return l.Price * int64(l.Quantity)
}

// SaleBuilder accumulates the draft state of one sale before it is finalized.
// It is a per-request value, not shared between goroutines. Lines keep their
// insertion order; the order in the builder is the order on the invoice.
type SaleBuilder struct {
	customerID   *uuid.UUID
	customerName string
	issuerName   string
	saleDate     time.Time
	lines        []SaleLine
	catalog      map[uuid.UUID]*entity.Product
}

// NewSaleBuilder creates a builder seeded with the product catalog used to
// resolve product references.
func NewSaleBuilder(products []entity.Product) *SaleBuilder {
	catalog := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}
	return &SaleBuilder{
		saleDate: time.Now(),
		catalog:  catalog,
	}
}

// SetCustomer links the sale to a customer record.
func (b *SaleBuilder) SetCustomer(id uuid.UUID, name string) {
	b.customerID = &id
	b.customerName = name
}

// SetCustomerName records a free-text customer name without a customer record.
func (b *SaleBuilder) SetCustomerName(name string) {
	b.customerID = nil
	b.customerName = name
}

// SetIssuer records who is issuing the sale.
func (b *SaleBuilder) SetIssuer(name string) {
	b.issuerName = name
}

// SetSaleDate overrides the sale date (defaults to now).
func (b *SaleBuilder) SetSaleDate(t time.Time) {
	if !t.IsZero() {
		b.saleDate = t
	}
}

// AddLine appends an empty line and returns its ID. New lines start with
// quantity 1 and no product or price.
func (b *SaleBuilder) AddLine() uuid.UUID {
	line := SaleLine{
		ID:       uuid.New(),
		Quantity: 1,
	}
	b.lines = append(b.lines, line)
	return line.ID
}

// SetLineProduct points a line at a catalog product, snapshotting its name
// and current price. An unknown product ID leaves the line untouched.
func (b *SaleBuilder) SetLineProduct(lineID, productID uuid.UUID) {
	line := b.findLine(lineID)
	if line == nil {
		return
	}
	product, ok := b.catalog[productID]
	if !ok {
		return
	}
	id := product.ID
	line.ProductID = &id
	line.ProductName = product.Name
	line.Price = product.Price
}

// SetLineName sets a free-text product name on a line, clearing any product
// reference. Used for items sold outside the catalog.
func (b *SaleBuilder) SetLineName(lineID uuid.UUID, name string) {
	line := b.findLine(lineID)
	if line == nil {
		return
	}
	line.ProductID = nil
	line.ProductName = name
}

// SetLinePrice overrides the unit price of a line, in cents.
func (b *SaleBuilder) SetLinePrice(lineID uuid.UUID, price int64) {
	line := b.findLine(lineID)
	if line == nil {
		return
	}
	line.Price = price
}

// SetLineQuantity sets the quantity of a line. Values below one are coerced
// to one so a visible line always contributes to the total.
func (b *SaleBuilder) SetLineQuantity(lineID uuid.UUID, quantity int) {
	line := b.findLine(lineID)
	if line == nil {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
}

// RemoveLine deletes a line. Remaining lines keep their relative order.
func (b *SaleBuilder) RemoveLine(lineID uuid.UUID) {
	for i := range b.lines {
		if b.lines[i].ID == lineID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			return
		}
	}
}

// Lines returns the current draft lines in insertion order.
func (b *SaleBuilder) Lines() []SaleLine {
	return b.lines
}

// GrandTotal recomputes the running total from the current lines, in cents.
func (b *SaleBuilder) GrandTotal() int64 {
	var total int64
	for i := range b.lines {
		total += b.lines[i].Total()
	}
	return total
}

// Build validates the draft and produces a sale ready for persistence. It
// returns a validation error listing every problem at once rather than
// failing on the first.
func (b *SaleBuilder) Build(userID uuid.UUID) (*entity.Sale, error) {
	var fieldErrors []apperror.FieldError

	if b.customerID == nil && strings.TrimSpace(b.customerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "customer",
			Message: "A customer or a customer name is required",
		})
	}
	if strings.TrimSpace(b.issuerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "issuer_name",
			Message: "Issuer name is required",
		})
	}
	if len(b.lines) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "items",
			Message: "At least one line item is required",
		})
	}
	for i := range b.lines {
		line := &b.lines[i]
		if strings.TrimSpace(line.ProductName) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "items",
				Message: fmt.Sprintf("Line %d has no product", i+1),
			})
		}
		if line.Price < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "items",
				Message: fmt.Sprintf("Line %d has a negative price", i+1),
			})
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	sale := &entity.Sale{
		UserID:       userID,
		CustomerID:   b.customerID,
		CustomerName: strings.TrimSpace(b.customerName),
		IssuerName:   strings.TrimSpace(b.issuerName),
		SaleDate:     b.saleDate,
		Total:        b.GrandTotal(),
		Items:        make([]entity.SaleItem, 0, len(b.lines)),
	}

	for i := range b.lines {
		line := &b.lines[i]
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: strings.TrimSpace(line.ProductName),
			Quantity:    line.Quantity,
			Price:       line.Price,
			Total:       line.Total(),
			Position:    i,
		})
	}

	return sale, nil
}

func (b *SaleBuilder) findLine(id uuid.UUID) *SaleLine {
	for i := range b.lines {
		if b.lines[i].ID == id {
			return &b.lines[i]
		}
	}
	return nil
}

