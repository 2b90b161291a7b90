package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yarotech/pos-api/internal/application/service"
	"github.com/yarotech/pos-api/internal/domain/repository"
	"github.com/yarotech/pos-api/internal/presentation/http/dto/request"
	"github.com/yarotech/pos-api/internal/presentation/http/dto/response"
	"github.com/yarotech/pos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		UserID:      *userID,
		Name:        req.Name,
		Code:        req.Code,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// List handles product listing. With ?cursor or ?limit the endpoint switches
// to cursor-based pagination.
func (h *ProductHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	skipUserFilter := IsAuditor(c)

	if req.Cursor != "" || req.Limit > 0 {
		params := &repository.ProductCursorFilterParams{
			Cursor: &pagination.CursorParams{
				Cursor: req.Cursor,
				Limit:  req.Limit,
			},
			Search:         req.Search,
			SkipUserFilter: skipUserFilter,
		}

		result, err := h.productService.ListProductsWithCursor(c.Request.Context(), *userID, params)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Products retrieved", result)
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search:         req.Search,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		SkipUserFilter: skipUserFilter,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// Get handles retrieving a single product by slug
func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.productService.GetProduct(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		UserID:        *userID,
		ProductSlug:   c.Param("slug"),
		SkipUserCheck: IsAuditor(c),
		Name:          req.Name,
		Code:          req.Code,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	err := h.productService.DeleteProduct(c.Request.Context(), *userID, c.Param("slug"), IsAuditor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// ImportProducts handles bulk product import from an uploaded .xlsx file.
// Expected columns: Name, Code, Price, Quantity, Description; first row is
// the header.
func (h *ProductHandler) ImportProducts(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file upload named 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		response.BadRequest(c, "File is not a valid xlsx workbook")
		return
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		response.BadRequest(c, "Workbook has no sheets")
		return
	}

	xlsxRows, err := workbook.GetRows(sheet)
	if err != nil {
		response.BadRequest(c, "Failed to read workbook rows")
		return
	}
	if len(xlsxRows) < 2 {
		response.BadRequest(c, "Workbook has no data rows")
		return
	}

	rows := make([]service.ImportProductRow, 0, len(xlsxRows)-1)
	for _, cells := range xlsxRows[1:] {
		row := service.ImportProductRow{}
		if len(cells) > 0 {
			row.Name = strings.TrimSpace(cells[0])
		}
		if len(cells) > 1 {
			row.Code = strings.TrimSpace(cells[1])
		}
		if len(cells) > 2 {
			row.Price, _ = strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
		}
		if len(cells) > 3 {
			row.Quantity, _ = strconv.Atoi(strings.TrimSpace(cells[3]))
		}
		if len(cells) > 4 {
			row.Description = strings.TrimSpace(cells[4])
		}
		rows = append(rows, row)
	}

	result, err := h.productService.ImportProducts(c.Request.Context(), *userID, rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product import completed", result)
}
