package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/application/service"
	"github.com/yarotech/pos-api/internal/domain/repository"
	"github.com/yarotech/pos-api/internal/presentation/http/dto/request"
	"github.com/yarotech/pos-api/internal/presentation/http/dto/response"
	"github.com/yarotech/pos-api/pkg/pagination"
)

// SaleHandler handles sale and invoice HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	invoiceService *service.InvoiceService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, invoiceService *service.InvoiceService) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		invoiceService: invoiceService,
	}
}

// Create handles sale creation. The route requires an Idempotency-Key header
// so a retried request never books the sale twice.
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	items := make([]service.SaleLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleLineInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		UserID:       *userID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		IssuerName:   req.IssuerName,
		SaleDate:     saleDate,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// List handles sale listing. Admins and moderators see every user's sales;
// others see only their own.
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	skipUserFilter := IsAuditor(c)

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		customerID = &id
	}

	// Malformed dates are dropped rather than silently filtering everything
	// out against a zero time.
	var startDate, endDate *time.Time
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			startDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			// Inclusive end of day
			t = t.Add(24*time.Hour - time.Nanosecond)
			endDate = &t
		}
	}

	if req.Cursor != "" || req.Limit > 0 {
		params := &repository.SaleCursorFilterParams{
			Cursor: &pagination.CursorParams{
				Cursor: req.Cursor,
				Limit:  req.Limit,
			},
			Search:         req.Search,
			CustomerID:     customerID,
			StartDate:      startDate,
			EndDate:        endDate,
			SkipUserFilter: skipUserFilter,
		}

		result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), *userID, params)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Sales retrieved", result)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search:         req.Search,
		CustomerID:     customerID,
		StartDate:      startDate,
		EndDate:        endDate,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		SkipUserFilter: skipUserFilter,
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// Get handles retrieving a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *userID, saleID, IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// GetByInvoiceNo handles retrieving a sale by its invoice number
func (h *SaleHandler) GetByInvoiceNo(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sale, err := h.saleService.GetSaleByInvoiceNo(c.Request.Context(), *userID, c.Param("invoice_no"), IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// Delete handles sale deletion. Admin only; wired at the route level.
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}

// GetInvoice returns the invoice view of a sale as JSON
func (h *SaleHandler) GetInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, saleID, IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", inv)
}

// DownloadInvoice renders the sale's invoice PDF and streams it as an
// attachment
func (h *SaleHandler) DownloadInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	pdf, filename, err := h.invoiceService.RenderPDF(c.Request.Context(), *userID, saleID, IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", pdf)
}

// EmailInvoice renders the invoice PDF and sends it to the sale's customer,
// or to an override address given in the request body
func (h *SaleHandler) EmailInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.EmailInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipient, err := h.invoiceService.EmailInvoice(c.Request.Context(), *userID, saleID, req.To, IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice emailed successfully", gin.H{"sent_to": recipient})
}
