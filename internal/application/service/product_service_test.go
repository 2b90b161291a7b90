package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/pkg/apperror"
)

func TestProductServiceCreateProduct(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates with generated code and slug", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo)

		product, err := svc.CreateProduct(ctx, &CreateProductInput{
			UserID:   userID,
			Name:     "Fiber Router",
			Price:    25000,
			Quantity: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, "fiber-router", product.Slug)
		assert.NotEmpty(t, product.Code)
		assert.Equal(t, int64(2500000), product.Price)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		repo := newFakeProductRepo(entity.Product{ID: uuid.New(), Name: "Router", Code: "PRD-001"})
		svc := NewProductService(repo)

		_, err := svc.CreateProduct(ctx, &CreateProductInput{
			UserID: userID,
			Name:   "Another Router",
			Code:   "PRD-001",
		})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("suffixes a colliding slug", func(t *testing.T) {
		repo := newFakeProductRepo(entity.Product{ID: uuid.New(), Name: "Router", Slug: "router", Code: "PRD-001"})
		svc := NewProductService(repo)

		product, err := svc.CreateProduct(ctx, &CreateProductInput{
			UserID: userID,
			Name:   "Router",
		})
		require.NoError(t, err)
		assert.NotEqual(t, "router", product.Slug)
		assert.Contains(t, product.Slug, "router-")
	})
}

func TestProductServiceUpdateProduct(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	seed := entity.Product{ID: uuid.New(), UserID: owner, Name: "Router", Slug: "router", Code: "PRD-001", Price: 2500000}

	t.Run("owner updates price without touching history", func(t *testing.T) {
		repo := newFakeProductRepo(seed)
		svc := NewProductService(repo)

		price := 30000.0
		product, err := svc.UpdateProduct(ctx, &UpdateProductInput{
			UserID:      owner,
			ProductSlug: "router",
			Price:       &price,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3000000), product.Price)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := newFakeProductRepo(seed)
		svc := NewProductService(repo)

		name := "Hijacked"
		_, err := svc.UpdateProduct(ctx, &UpdateProductInput{
			UserID:      uuid.New(),
			ProductSlug: "router",
			Name:        &name,
		})
		require.Error(t, err)
		assert.Equal(t, 403, apperror.GetAppError(err).Code)
	})

	t.Run("audit access may update any product", func(t *testing.T) {
		repo := newFakeProductRepo(seed)
		svc := NewProductService(repo)

		quantity := 5
		product, err := svc.UpdateProduct(ctx, &UpdateProductInput{
			UserID:        uuid.New(),
			ProductSlug:   "router",
			SkipUserCheck: true,
			Quantity:      &quantity,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, product.Quantity)
	})
}

func TestProductServiceImportProducts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("imports valid rows", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo)

		result, err := svc.ImportProducts(ctx, userID, []ImportProductRow{
			{Name: "Router", Code: "PRD-001", Price: 25000, Quantity: 10},
			{Name: "Switch", Code: "PRD-002", Price: 12500, Quantity: 4},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.Successful)
		assert.Zero(t, result.Failed)
		assert.Len(t, repo.products, 2)
	})

	t.Run("bad rows are reported with their row number", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo)

		result, err := svc.ImportProducts(ctx, userID, []ImportProductRow{
			{Name: "", Code: "PRD-001", Price: 100},
			{Name: "Negative", Code: "PRD-002", Price: -5},
			{Name: "Good", Code: "PRD-003", Price: 100},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Successful)
		assert.Equal(t, 2, result.Failed)
		require.Len(t, result.Errors, 2)
		// Data starts at row 2; the header is row 1
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Equal(t, "name", result.Errors[0].Field)
		assert.Equal(t, 3, result.Errors[1].Row)
		assert.Equal(t, "price", result.Errors[1].Field)
	})

	t.Run("duplicate codes inside the file are rejected", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo)

		result, err := svc.ImportProducts(ctx, userID, []ImportProductRow{
			{Name: "Router", Code: "PRD-001", Price: 100},
			{Name: "Router Again", Code: "PRD-001", Price: 100},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Successful)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "code", result.Errors[0].Field)
		assert.Contains(t, result.Errors[0].Message, "Duplicate code")
	})

	t.Run("existing catalog codes are rejected", func(t *testing.T) {
		repo := newFakeProductRepo(entity.Product{ID: uuid.New(), Name: "Router", Code: "PRD-001"})
		svc := NewProductService(repo)

		result, err := svc.ImportProducts(ctx, userID, []ImportProductRow{
			{Name: "Router Copy", Code: "PRD-001", Price: 100},
		})
		require.NoError(t, err)

		assert.Zero(t, result.Successful)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0].Message, "already exists")
	})
}
