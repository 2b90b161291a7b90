package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/entity"
	domainRepo "github.com/yarotech/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) domainRepo.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetTotals(ctx context.Context, userID *uuid.UUID) (int64, int64, error) {
	var result struct {
		Count   int64
		Revenue int64
	}

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COUNT(*) as count, COALESCE(SUM(total), 0) as revenue")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	err := query.Scan(&result).Error
	return result.Count, result.Revenue, err
}

func (r *statsRepository) GetTopProducts(ctx context.Context, userID *uuid.UUID, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	query := r.db.WithContext(ctx).
		Table("sale_items").
		Select(`sale_items.product_id,
			sale_items.product_name,
			SUM(sale_items.quantity) as quantity_sold,
			COALESCE(SUM(sale_items.total), 0) as revenue`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sale_items.product_id IS NOT NULL")
	if userID != nil {
		query = query.Where("sales.user_id = ?", *userID)
	}

	err := query.
		Group("sale_items.product_id, sale_items.product_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

func (r *statsRepository) GetTopCustomers(ctx context.Context, userID *uuid.UUID, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult

	query := r.db.WithContext(ctx).
		Table("sales").
		Select(`sales.customer_id,
			MAX(customers.name) as customer_name,
			COALESCE(SUM(sales.total), 0) as total_spent,
			COUNT(*) as sale_count`).
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Where("sales.customer_id IS NOT NULL")
	if userID != nil {
		query = query.Where("sales.user_id = ?", *userID)
	}

	err := query.
		Group("sales.customer_id").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

func (r *statsRepository) GetDailySales(ctx context.Context, userID *uuid.UUID, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	since := time.Now().AddDate(0, 0, -days)
	query := r.db.WithContext(ctx).
		Table("sales").
		Select(`DATE(sale_date) as date,
			COALESCE(SUM(total), 0) as revenue,
			COUNT(*) as count`).
		Where("sale_date >= ?", since)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	err := query.
		Group("DATE(sale_date)").
		Order("date ASC").
		Scan(&results).Error

	return results, err
}

func (r *statsRepository) CountProducts(ctx context.Context, userID *uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *statsRepository) CountCustomers(ctx context.Context, userID *uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Customer{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Count(&count).Error
	return count, err
}
