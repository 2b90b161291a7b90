package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/repository"
)

// StatsService aggregates sales figures for the dashboard and the admin
// audit view
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// SalesStats represents aggregated sales figures. Amounts are decimals.
type SalesStats struct {
	TotalSales     int64              `json:"total_sales"`
	TotalRevenue   float64            `json:"total_revenue"`
	TotalProducts  int64              `json:"total_products"`
	TotalCustomers int64              `json:"total_customers"`
	TopProducts    []TopProductPoint  `json:"top_products"`
	TopCustomers   []TopCustomerPoint `json:"top_customers"`
	DailySales     []DailySalesPoint  `json:"daily_sales"`
}

// TopProductPoint represents a product's sales performance
type TopProductPoint struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// TopCustomerPoint represents a customer's spending
type TopCustomerPoint struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	TotalSpent   float64   `json:"total_spent"`
	SaleCount    int       `json:"sale_count"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// GetSalesStats returns sales statistics. A nil userID aggregates across all
// users; callers pass nil only for admins and moderators.
func (s *StatsService) GetSalesStats(ctx context.Context, userID *uuid.UUID) (*SalesStats, error) {
	stats := &SalesStats{}

	count, revenue, err := s.statsRepo.GetTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = count
	stats.TotalRevenue = float64(revenue) / 100

	stats.TotalProducts, err = s.statsRepo.CountProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.TotalCustomers, err = s.statsRepo.CountCustomers(ctx, userID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.statsRepo.GetTopProducts(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = make([]TopProductPoint, 0, len(topProducts))
	for _, p := range topProducts {
		stats.TopProducts = append(stats.TopProducts, TopProductPoint{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      float64(p.Revenue) / 100,
		})
	}

	topCustomers, err := s.statsRepo.GetTopCustomers(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	stats.TopCustomers = make([]TopCustomerPoint, 0, len(topCustomers))
	for _, c := range topCustomers {
		stats.TopCustomers = append(stats.TopCustomers, TopCustomerPoint{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			TotalSpent:   float64(c.TotalSpent) / 100,
			SaleCount:    c.SaleCount,
		})
	}

	daily, err := s.statsRepo.GetDailySales(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySales = make([]DailySalesPoint, 0, len(daily))
	for _, d := range daily {
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:    d.Date.Format("Jan 02"),
			Revenue: float64(d.Revenue) / 100,
			Count:   d.Count,
		})
	}

	return stats, nil
}
