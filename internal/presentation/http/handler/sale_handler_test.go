package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarotech/pos-api/internal/application/service"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/internal/domain/repository"
)

// listingSaleRepo returns a fixed sale list and records the filter params it
// was queried with.
type listingSaleRepo struct {
	sales      []entity.Sale
	lastParams *repository.SaleFilterParams
}

func (r *listingSaleRepo) CreateWithItems(_ context.Context, sale *entity.Sale) error { return nil }

func (r *listingSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return nil, nil
}

func (r *listingSaleRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Sale, error) {
	return nil, nil
}

func (r *listingSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return nil, nil
}

func (r *listingSaleRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (r *listingSaleRepo) List(_ context.Context, _ uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	params.Pagination.Validate()
	r.lastParams = params
	return r.sales, int64(len(r.sales)), nil
}

func (r *listingSaleRepo) ListWithCursor(_ context.Context, _ uuid.UUID, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return r.sales, nil
}

func newSaleListRouter(repo *listingSaleRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	saleService := service.NewSaleService(repo, nil, nil)
	h := NewSaleHandler(saleService, nil)

	router := gin.New()
	router.GET("/sales",
		func(c *gin.Context) { c.Set("user_id", uuid.New()) },
		h.List,
	)
	return router
}

func TestSaleHandlerListDateFilters(t *testing.T) {
	seed := []entity.Sale{{ID: uuid.New(), InvoiceNo: "INV-A1B2C3D4", Total: 3750000}}

	t.Run("malformed end_date is rejected, not an empty 200", func(t *testing.T) {
		repo := &listingSaleRepo{sales: seed}
		router := newSaleListRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/sales?end_date=not-a-date", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.Nil(t, repo.lastParams)
	})

	t.Run("malformed start_date is rejected", func(t *testing.T) {
		repo := &listingSaleRepo{sales: seed}
		router := newSaleListRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/sales?start_date=2025-13-99", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.Nil(t, repo.lastParams)
	})

	t.Run("valid range reaches the repository parsed", func(t *testing.T) {
		repo := &listingSaleRepo{sales: seed}
		router := newSaleListRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/sales?start_date=2025-03-01&end_date=2025-03-10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		require.NotNil(t, repo.lastParams)
		require.NotNil(t, repo.lastParams.StartDate)
		require.NotNil(t, repo.lastParams.EndDate)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *repo.lastParams.StartDate)
		// End date is inclusive through the end of the day
		assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *repo.lastParams.EndDate)
	})

	t.Run("no date filters when none are given", func(t *testing.T) {
		repo := &listingSaleRepo{sales: seed}
		router := newSaleListRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		require.NotNil(t, repo.lastParams)
		assert.Nil(t, repo.lastParams.StartDate)
		assert.Nil(t, repo.lastParams.EndDate)
	})
}
