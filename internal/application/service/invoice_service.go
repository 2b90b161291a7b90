package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/internal/domain/repository"
	"github.com/yarotech/pos-api/pkg/apperror"
	"github.com/yarotech/pos-api/pkg/email"
	"github.com/yarotech/pos-api/pkg/invoice"
)

// InvoiceService renders and dispatches invoices for persisted sales. The
// invoice itself is never stored; it is recomputed from the sale on every
// request, so rendering twice always yields the same document.
type InvoiceService struct {
	saleRepo     repository.SaleRepository
	renderer     *invoice.Renderer
	emailService *email.EmailService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	saleRepo repository.SaleRepository,
	renderer *invoice.Renderer,
	emailService *email.EmailService,
) *InvoiceService {
	return &InvoiceService{
		saleRepo:     saleRepo,
		renderer:     renderer,
		emailService: emailService,
	}
}

// GetInvoice projects a persisted sale into its invoice
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, saleID uuid.UUID, skipUserCheck bool) (*entity.Invoice, error) {
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
	return entity.NewInvoice(sale)
}

// RenderPDF renders the invoice for a sale and returns the document bytes
// together with the download filename.
func (s *InvoiceService) RenderPDF(ctx context.Context, userID, saleID uuid.UUID, skipUserCheck bool) ([]byte, string, error) {
	inv, err := s.GetInvoice(ctx, userID, saleID, skipUserCheck)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(inv)
	if err != nil {
		return nil, "", err
	}

	return pdf, inv.Filename(), nil
}

// EmailInvoice renders the invoice and emails it as an attachment. The
// recipient defaults to the sale's customer email; overrideTo forces a
// different address. With neither, the configured admin address is used.
func (s *InvoiceService) EmailInvoice(ctx context.Context, userID, saleID uuid.UUID, overrideTo string, skipUserCheck bool) (string, error) {
	inv, err := s.GetInvoice(ctx, userID, saleID, skipUserCheck)
	if err != nil {
		return "", err
	}

	pdf, err := s.renderer.Render(inv)
	if err != nil {
		return "", err
	}

	to := overrideTo
	if to == "" {
		to = inv.CustomerEmail
	}

	msg := &email.InvoiceEmail{
		To:           to,
		InvoiceNo:    inv.InvoiceNo,
		CustomerName: inv.CustomerName,
		SaleDate:     inv.Date.Format("Jan 02, 2006"),
		Total:        invoice.FormatAmount(inv.Total),
		IssuerName:   inv.IssuerName,
		PDF:          pdf,
		Filename:     inv.Filename(),
	}

	if err := s.emailService.SendInvoiceEmail(msg); err != nil {
		return "", apperror.NewAppError(502, "Failed to send invoice email: "+err.Error())
	}

	return msg.To, nil
}
