package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a finalized point-of-sale transaction. A sale is written
// once, together with its items, and never mutated afterwards; the invoice
// renderer and the audit view only ever read it back.
type Sale struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string     `gorm:"size:255" json:"customer_name"`
	IssuerName   string     `gorm:"size:255;not null" json:"issuer_name"`
	SaleDate     time.Time  `gorm:"not null" json:"sale_date"`
	InvoiceNo    string     `gorm:"size:100;unique;not null" json:"invoice_no"`
	Total        int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(s),
		Total: float64(s.Total) / 100,
	})
}

// BeforeCreate generates a UUID and the derived invoice number before insert
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.InvoiceNo == "" {
		s.InvoiceNo = DeriveInvoiceNo(s.ID.String())
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// BillToName returns the name the invoice is billed to, preferring the linked
// customer record over the free-text snapshot.
func (s *Sale) BillToName() string {
	if s.Customer != nil && s.Customer.Name != "" {
		return s.Customer.Name
	}
	return s.CustomerName
}

// DeriveInvoiceNo derives the invoice number from a sale identifier. The
// mapping is deterministic so re-rendering the same sale always yields the
// same invoice number: "a1b2c3d4-..." becomes "INV-A1B2C3D4".
func DeriveInvoiceNo(saleID string) string {
	id := saleID
	if len(id) > 8 {
		id = id[:8]
	}
	return "INV-" + strings.ToUpper(id)
}

// SaleItem represents a line item in a sale. Product name and unit price are
// snapshots taken when the line was added; later catalog changes never alter
// historical sales.
type SaleItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Price       int64      `gorm:"not null" json:"-"` // Unit price in cents, excluded from JSON
	Total       int64      `gorm:"not null" json:"-"` // Line total in cents, excluded from JSON
	Position    int        `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Sale    Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	}{
		Alias: Alias(si),
		Price: float64(si.Price) / 100,
		Total: float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
