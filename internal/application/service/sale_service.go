package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/internal/domain/repository"
	"github.com/yarotech/pos-api/pkg/apperror"
	"github.com/yarotech/pos-api/pkg/pagination"
)

// SaleService handles sale recording and retrieval
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleLineInput represents one line of a create sale request
type SaleLineInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
	Price       *float64 // Unit price; nil means use the catalog price
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID       uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	IssuerName   string
	SaleDate     time.Time
	Items        []SaleLineInput
}

// CreateSale builds and persists a sale. Validation happens before any write;
// an invalid request leaves nothing behind, and the sale row and its items
// are committed in one transaction.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	// Resolve the customer reference first
	customerName := input.CustomerName
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if customerName == "" {
			customerName = customer.Name
		}
	}

	// Batch fetch referenced products in one query
	var productIDs []uuid.UUID
	for _, item := range input.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		known[products[i].ID] = true
	}

	builder := NewSaleBuilder(products)
	if input.CustomerID != nil {
		builder.SetCustomer(*input.CustomerID, customerName)
	} else {
		builder.SetCustomerName(customerName)
	}
	builder.SetIssuer(input.IssuerName)
	builder.SetSaleDate(input.SaleDate)

	for _, item := range input.Items {
		lineID := builder.AddLine()
		if item.ProductID != nil {
			if !known[*item.ProductID] {
				return nil, apperror.NewNotFoundError("Product " + item.ProductID.String())
			}
			builder.SetLineProduct(lineID, *item.ProductID)
		}
		if item.ProductID == nil && strings.TrimSpace(item.ProductName) != "" {
			builder.SetLineName(lineID, item.ProductName)
		}
		builder.SetLineQuantity(lineID, item.Quantity)
		if item.Price != nil {
			builder.SetLinePrice(lineID, int64(*item.Price*100))
		}
	}

	sale, err := builder.Build(input.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale with its items. Owners see their own sales;
// skipUserCheck is set for admins and moderators viewing the audit trail.
func (s *SaleService) GetSale(ctx context.Context, userID, saleID uuid.UUID, skipUserCheck bool) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !skipUserCheck && sale.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return sale, nil
}

// GetSaleByInvoiceNo retrieves a sale by its invoice number
func (s *SaleService) GetSaleByInvoiceNo(ctx context.Context, userID uuid.UUID, invoiceNo string, skipUserCheck bool) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !skipUserCheck && sale.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return sale, nil
}

// ListSales lists sales with filtering and page-based pagination
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, userID uuid.UUID, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sa entity.Sale) string { return sa.ID.String() },
		func(sa entity.Sale) time.Time { return sa.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// DeleteSale removes a sale and its items. Reserved for admins correcting
// bad records; regular users cannot delete their own sales.
func (s *SaleService) DeleteSale(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	return s.saleRepo.Delete(ctx, saleID)
}
