package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/internal/domain/repository"
	"github.com/yarotech/pos-api/pkg/apperror"
	"github.com/yarotech/pos-api/pkg/pagination"
)

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) CreateWithItems(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.InvoiceNo == "" {
		sale.InvoiceNo = entity.DeriveInvoiceNo(sale.ID.String())
	}
	sale.CreatedAt = time.Now()
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceNo == invoiceNo {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if params.SkipUserFilter || s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListWithCursor(_ context.Context, userID uuid.UUID, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if params.SkipUserFilter || s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) CreateBatch(_ context.Context, products []entity.Product) error {
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ uuid.UUID, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListWithCursor(_ context.Context, _ uuid.UUID, _ *repository.ProductCursorFilterParams) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]entity.Customer
}

func newFakeCustomerRepo(customers ...entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email != nil && *c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ uuid.UUID, _ *pagination.PaginationParams, _ string, _ bool) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) ListWithCursor(_ context.Context, _ uuid.UUID, _ *pagination.CursorParams, _ string, _ bool) ([]entity.Customer, error) {
	return nil, nil
}

func floatPtr(f float64) *float64 { return &f }

func TestSaleServiceCreateSale(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	router := entity.Product{ID: uuid.New(), Name: "Router", Price: 2500000}
	switchP := entity.Product{ID: uuid.New(), Name: "Switch", Price: 1250000}

	t.Run("records a sale from catalog references", func(t *testing.T) {
		saleRepo := newFakeSaleRepo()
		svc := NewSaleService(saleRepo, newFakeProductRepo(router, switchP), newFakeCustomerRepo())

		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			IssuerName:   "Aisha Bello",
			SaleDate:     time.Now(),
			Items: []SaleLineInput{
				{ProductID: &router.ID, Quantity: 1},
				{ProductID: &switchP.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.Equal(t, int64(3750000), sale.Total)
		assert.Equal(t, entity.DeriveInvoiceNo(sale.ID.String()), sale.InvoiceNo)
		require.Len(t, sale.Items, 2)
		assert.Equal(t, "Router", sale.Items[0].ProductName)
		assert.Len(t, saleRepo.sales, 1)
	})

	t.Run("free-text lines carry their own name and price", func(t *testing.T) {
		saleRepo := newFakeSaleRepo()
		svc := NewSaleService(saleRepo, newFakeProductRepo(), newFakeCustomerRepo())

		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			IssuerName:   "Aisha Bello",
			SaleDate:     time.Now(),
			Items: []SaleLineInput{
				{ProductName: "Installation fee", Quantity: 1, Price: floatPtr(5000)},
			},
		})
		require.NoError(t, err)

		require.Len(t, sale.Items, 1)
		assert.Nil(t, sale.Items[0].ProductID)
		assert.Equal(t, "Installation fee", sale.Items[0].ProductName)
		assert.Equal(t, int64(500000), sale.Items[0].Price)
	})

	t.Run("price override beats the catalog price", func(t *testing.T) {
		saleRepo := newFakeSaleRepo()
		svc := NewSaleService(saleRepo, newFakeProductRepo(router), newFakeCustomerRepo())

		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			IssuerName:   "Aisha Bello",
			SaleDate:     time.Now(),
			Items: []SaleLineInput{
				{ProductID: &router.ID, Quantity: 1, Price: floatPtr(20000)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2000000), sale.Items[0].Price)
	})

	t.Run("unknown product reference fails before persisting", func(t *testing.T) {
		saleRepo := newFakeSaleRepo()
		svc := NewSaleService(saleRepo, newFakeProductRepo(router), newFakeCustomerRepo())

		missing := uuid.New()
		_, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			IssuerName:   "Aisha Bello",
			SaleDate:     time.Now(),
			Items: []SaleLineInput{
				{ProductID: &missing, Quantity: 1},
			},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("invalid draft persists nothing", func(t *testing.T) {
		saleRepo := newFakeSaleRepo()
		svc := NewSaleService(saleRepo, newFakeProductRepo(router), newFakeCustomerRepo())

		_, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:   userID,
			SaleDate: time.Now(),
			Items: []SaleLineInput{
				{ProductID: &router.ID, Quantity: 1},
			},
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("unknown customer reference fails", func(t *testing.T) {
		svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(router), newFakeCustomerRepo())

		missing := uuid.New()
		_, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:     userID,
			CustomerID: &missing,
			IssuerName: "Aisha Bello",
			SaleDate:   time.Now(),
			Items: []SaleLineInput{
				{ProductID: &router.ID, Quantity: 1},
			},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("linked customer fills in the bill-to name", func(t *testing.T) {
		customer := entity.Customer{ID: uuid.New(), Name: "Jalingo Ventures"}
		svc := NewSaleService(newFakeSaleRepo(), newFakeProductRepo(router), newFakeCustomerRepo(customer))

		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			UserID:     userID,
			CustomerID: &customer.ID,
			IssuerName: "Aisha Bello",
			SaleDate:   time.Now(),
			Items: []SaleLineInput{
				{ProductID: &router.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Jalingo Ventures", sale.CustomerName)
	})
}

func TestSaleServiceGetSale(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(), newFakeCustomerRepo())

	sale := &entity.Sale{
		UserID:       owner,
		CustomerName: "Walk-in",
		IssuerName:   "Aisha Bello",
		SaleDate:     time.Now(),
		Total:        100000,
		Items:        []entity.SaleItem{{ProductName: "Cable", Quantity: 1, Price: 100000, Total: 100000}},
	}
	require.NoError(t, saleRepo.CreateWithItems(ctx, sale))

	t.Run("owner can read it", func(t *testing.T) {
		got, err := svc.GetSale(ctx, owner, sale.ID, false)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		_, err := svc.GetSale(ctx, other, sale.ID, false)
		require.Error(t, err)
		assert.Equal(t, 403, apperror.GetAppError(err).Code)
	})

	t.Run("audit access skips the ownership check", func(t *testing.T) {
		got, err := svc.GetSale(ctx, other, sale.ID, true)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)
	})

	t.Run("missing sale is a 404", func(t *testing.T) {
		_, err := svc.GetSale(ctx, owner, uuid.New(), false)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("lookup by invoice number", func(t *testing.T) {
		got, err := svc.GetSaleByInvoiceNo(ctx, owner, sale.InvoiceNo, false)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)
	})
}

func TestSaleServiceDeleteSale(t *testing.T) {
	ctx := context.Background()
	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, newFakeProductRepo(), newFakeCustomerRepo())

	sale := &entity.Sale{
		UserID:       uuid.New(),
		CustomerName: "Walk-in",
		IssuerName:   "Aisha Bello",
		SaleDate:     time.Now(),
		Items:        []entity.SaleItem{{ProductName: "Cable", Quantity: 1}},
	}
	require.NoError(t, saleRepo.CreateWithItems(ctx, sale))

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	assert.Empty(t, saleRepo.sales)

	err := svc.DeleteSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
