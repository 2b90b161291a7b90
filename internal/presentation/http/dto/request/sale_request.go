package request

import (
	"time"

	"github.com/google/uuid"
)

// SaleItemRequest represents one line item of a sale creation request.
// Either product_id or product_name must be set; product_name alone records
// an item sold outside the catalog.
type SaleItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name" binding:"omitempty,max=255"`
	Quantity    int        `json:"quantity"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID   *uuid.UUID        `json:"customer_id"`
	CustomerName string            `json:"customer_name" binding:"omitempty,max=255"`
	IssuerName   string            `json:"issuer_name" binding:"omitempty,max=255"`
	SaleDate     *time.Time        `json:"sale_date"`
	Items        []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// EmailInvoiceRequest represents an invoice email dispatch request
type EmailInvoiceRequest struct {
	To string `json:"to" binding:"omitempty,email"`
}
