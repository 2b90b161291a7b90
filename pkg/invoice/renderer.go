package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/pkg/apperror"
)

// Branding holds the fixed company constants stamped onto every invoice.
type Branding struct {
	CompanyName string
	Address     string
	Phone       string
	Email       string
	Currency    string // currency code shown in table headers and totals
	Logo        []byte // optional PNG or JPEG, nil renders a degraded header
	ThankYou    string
}

type rgb struct {
	r, g, b int
}

var (
	accent     = rgb{33, 150, 243}
	accentDark = rgb{20, 100, 180}
	black      = rgb{0, 0, 0}
	white      = rgb{255, 255, 255}
	gray       = rgb{128, 128, 128}
	rowAlt     = rgb{248, 250, 255}
)

// textBlock is one positioned piece of static page content. The whole fixed
// layout is a list of these walked in order, so coordinates live in one place
// instead of being re-derived per variant.
type textBlock struct {
	x, y    float64
	size    float64
	style   string
	color   rgb
	align   string // "" = left baseline, "C" = centered on x
	content func(inv *entity.Invoice) string
}

// Page geometry (A4 portrait, millimetres).
const (
	marginLeft    = 20.0
	marginRight   = 190.0
	contentWidth  = marginRight - marginLeft
	tableStartY   = 150.0 // first page, below the metadata panel
	tableResumeY  = 75.0  // continuation pages, below the repeated header
	tableBottomY  = 268.0
	headRowHeight = 10.0
	bodyRowHeight = 8.0
)

// Column widths for {product, quantity, price, total}; together they span the
// content width.
var colWidths = [4]float64{75, 25, 35, 35}

// Renderer lays out one invoice as a paginated PDF document. It is stateless
// between calls; each Render builds an independent document.
type Renderer struct {
	branding Branding
	header   []textBlock
	meta     []textBlock
}

// NewRenderer creates a renderer for the given branding constants.
func NewRenderer(branding Branding) *Renderer {
	if branding.Currency == "" {
		branding.Currency = "NGN"
	}
	if branding.ThankYou == "" {
		branding.ThankYou = fmt.Sprintf("Thank you for your business with %s!", branding.CompanyName)
	}

	r := &Renderer{branding: branding}

	r.header = []textBlock{
		{x: 70, y: 30, size: 20, style: "B", color: accent, content: func(*entity.Invoice) string { return branding.CompanyName }},
		{x: 70, y: 40, size: 10, color: black, content: func(*entity.Invoice) string { return branding.Address }},
		{x: 70, y: 47, size: 10, color: accent, content: func(*entity.Invoice) string { return "Phone: " + branding.Phone }},
		{x: 70, y: 54, size: 10, color: accent, content: func(*entity.Invoice) string { return "Email: " + branding.Email }},
	}

	r.meta = []textBlock{
		{x: 50, y: 110, size: 9, style: "B", color: white, align: "C", content: func(*entity.Invoice) string { return "INVOICE ID" }},
		{x: 50, y: 118, size: 12, style: "B", color: accent, align: "C", content: func(inv *entity.Invoice) string { return inv.InvoiceNo }},
		{x: 25, y: 128, size: 10, style: "B", color: black, content: func(*entity.Invoice) string { return "BILL TO:" }},
		{x: 25, y: 135, size: 12, style: "B", color: black, content: func(inv *entity.Invoice) string { return orPlaceholder(inv.CustomerName) }},
		{x: 140, y: 128, size: 10, style: "B", color: black, content: func(*entity.Invoice) string { return "DATE:" }},
		{x: 140, y: 135, size: 12, color: black, content: func(inv *entity.Invoice) string { return inv.Date.Format("Jan 02, 2006 15:04") }},
	}

	return r
}

// Render produces the PDF bytes for one invoice. It performs no network or
// filesystem access; the caller decides whether the bytes become a download
// or an email attachment.
func (r *Renderer) Render(inv *entity.Invoice) ([]byte, error) {
	if inv == nil || inv.SaleID == uuid.Nil {
		return nil, apperror.NewUnprocessableError("Invoice is missing required data: sale ID")
	}
	if len(inv.Items) == 0 {
		return nil, apperror.NewUnprocessableError("Invoice is missing required data: no line items")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	// Pin the document dates to the sale date and sort the catalog
	// dictionaries so rendering the same sale twice produces identical
	// bytes. Without catalog sorting fpdf writes font entries in map
	// iteration order.
	pdf.SetCreationDate(inv.Date)
	pdf.SetModificationDate(inv.Date)
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if format := imageType(r.branding.Logo); format != "" {
		opts := fpdf.ImageOptions{ImageType: format}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(r.branding.Logo))
	}

	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(gray.r, gray.g, gray.b)
		pdf.SetXY(marginLeft, 282)
		pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.SetHeaderFunc(func() {
		r.drawHeader(pdf, tr, inv)
	})

	pdf.AddPage()
	r.drawTitleAndMeta(pdf, tr, inv)

	y := tableStartY
	y = r.drawTableHead(pdf, tr, y)

	for i, item := range inv.Items {
		if y+bodyRowHeight > tableBottomY {
			pdf.AddPage()
			y = r.drawTableHead(pdf, tr, tableResumeY)
		}
		r.drawRow(pdf, tr, y, item, i%2 == 1)
		y += bodyRowHeight
	}

	if y+headRowHeight+2 > tableBottomY {
		pdf.AddPage()
		y = tableResumeY
	}
	y = r.drawTotalRow(pdf, tr, y, inv.Total)

	// Issuer and closing blocks render only after the last table row.
	if y+60 > tableBottomY {
		pdf.AddPage()
		y = tableResumeY
	}
	r.drawClosing(pdf, tr, y, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", inv.InvoiceNo, err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, inv *entity.Invoice) {
	if format := imageType(r.branding.Logo); format != "" {
		opts := fpdf.ImageOptions{ImageType: format}
		pdf.ImageOptions("logo", marginLeft, 15, 40, 40, false, opts, 0, "")
	}

	r.walk(pdf, tr, r.header, inv)

	pdf.SetDrawColor(accent.r, accent.g, accent.b)
	pdf.SetLineWidth(1)
	pdf.Line(marginLeft, 65, marginRight, 65)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 67, marginRight, 67)
}

func (r *Renderer) drawTitleAndMeta(pdf *fpdf.Fpdf, tr func(string) string, inv *entity.Invoice) {
	// INVOICE title panel
	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.RoundedRect(140, 75, 50, 15, 3, "1234", "F")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(white.r, white.g, white.b)
	pdf.SetXY(140, 77)
	pdf.CellFormat(50, 11, tr("INVOICE"), "", 0, "C", false, 0, "")

	// Metadata panel with invoice id, bill-to and date
	pdf.SetDrawColor(accent.r, accent.g, accent.b)
	pdf.SetLineWidth(1)
	pdf.SetFillColor(rowAlt.r, rowAlt.g, rowAlt.b)
	pdf.RoundedRect(marginLeft, 100, contentWidth, 35, 3, "1234", "FD")

	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.RoundedRect(25, 105, 50, 8, 2, "1234", "F")

	r.walk(pdf, tr, r.meta, inv)
}

func (r *Renderer) drawTableHead(pdf *fpdf.Fpdf, tr func(string) string, y float64) float64 {
	headers := [4]string{
		"PRODUCT",
		"QUANTITY",
		fmt.Sprintf("PRICE (%s)", r.branding.Currency),
		fmt.Sprintf("TOTAL (%s)", r.branding.Currency),
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(white.r, white.g, white.b)
	pdf.SetFillColor(accent.r, accent.g, accent.b)

	pdf.SetXY(marginLeft, y)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], headRowHeight, tr(h), "", 0, "L", true, 0, "")
	}

	return y + headRowHeight
}

func (r *Renderer) drawRow(pdf *fpdf.Fpdf, tr func(string) string, y float64, item entity.InvoiceItem, alt bool) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(black.r, black.g, black.b)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	if alt {
		pdf.SetFillColor(rowAlt.r, rowAlt.g, rowAlt.b)
	} else {
		pdf.SetFillColor(white.r, white.g, white.b)
	}

	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], bodyRowHeight, tr(orPlaceholder(item.ProductName)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], bodyRowHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[2], bodyRowHeight, FormatAmount(item.Price), "1", 0, "R", true, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.CellFormat(colWidths[3], bodyRowHeight, FormatAmount(item.Total), "1", 0, "R", true, 0, "")
}

func (r *Renderer) drawTotalRow(pdf *fpdf.Fpdf, tr func(string) string, y float64, total int64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(white.r, white.g, white.b)

	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0]+colWidths[1], headRowHeight, "", "", 0, "L", false, 0, "")
	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.CellFormat(colWidths[2], headRowHeight, tr("GRAND TOTAL"), "", 0, "R", true, 0, "")
	pdf.SetFillColor(accentDark.r, accentDark.g, accentDark.b)
	pdf.CellFormat(colWidths[3], headRowHeight, tr(r.branding.Currency+" "+FormatAmount(total)), "", 0, "R", true, 0, "")

	return y + headRowHeight
}

func (r *Renderer) drawClosing(pdf *fpdf.Fpdf, tr func(string) string, y float64, inv *entity.Invoice) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(marginLeft, y+15, marginRight, y+15)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(black.r, black.g, black.b)
	pdf.Text(marginLeft, y+25, tr("INVOICE ISSUED BY:"))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.Text(marginLeft, y+32, tr(orPlaceholder(inv.IssuerName)))

	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.RoundedRect(marginLeft, y+42, contentWidth, 15, 3, "1234", "F")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(white.r, white.g, white.b)
	pdf.SetXY(marginLeft, y+42)
	pdf.CellFormat(contentWidth, 15, tr(r.branding.ThankYou), "", 0, "C", false, 0, "")
}

// walk draws a list of static text blocks.
func (r *Renderer) walk(pdf *fpdf.Fpdf, tr func(string) string, blocks []textBlock, inv *entity.Invoice) {
	for _, b := range blocks {
		pdf.SetFont("Helvetica", b.style, b.size)
		pdf.SetTextColor(b.color.r, b.color.g, b.color.b)
		text := tr(b.content(inv))
		if b.align == "C" {
			width := pdf.GetStringWidth(text)
			pdf.Text(b.x-width/2, b.y, text)
		} else {
			pdf.Text(b.x, b.y, text)
		}
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
