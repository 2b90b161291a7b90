package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      int64
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   int64
	SaleCount    int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue int64
	Count   int
}

// StatsRepository defines interface for sales aggregation queries.
// All amounts are in cents.
type StatsRepository interface {
	// GetTotals returns overall sale count and revenue. A nil userID
	// aggregates across all users (admin audit view).
	GetTotals(ctx context.Context, userID *uuid.UUID) (count int64, revenue int64, err error)

	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, userID *uuid.UUID, limit int) ([]TopProductResult, error)

	// GetTopCustomers returns top customers by total spending
	GetTopCustomers(ctx context.Context, userID *uuid.UUID, limit int) ([]TopCustomerResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, userID *uuid.UUID, days int) ([]DailySalesResult, error)

	// CountProducts returns the number of products visible to the user
	CountProducts(ctx context.Context, userID *uuid.UUID) (int64, error)

	// CountCustomers returns the number of customers visible to the user
	CountCustomers(ctx context.Context, userID *uuid.UUID) (int64, error)
}
