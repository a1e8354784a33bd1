// Package pdf renders invoices and the consolidated report with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) RenderInvoice(inv domain.Invoice, username string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, fmt.Sprintf("Invoice %s", inv.ID))
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Billed to: %s", username))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Order: %s", inv.OrderID))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Ship to: %s", inv.ShippingAddress))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Paid with: %s (%s)", inv.PaymentMethod, inv.MaskedCard))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Date: %s", inv.CreatedAt.Format("2006-01-02 15:04")))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 7, "Product", "1", 0, "L", false, 0, "")
	doc.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Unit price", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Line total", "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, it := range inv.Items {
		doc.CellFormat(90, 7, it.ProductName, "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, fmt.Sprintf("%.2f", it.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, fmt.Sprintf("%.2f", it.LineTotal), "1", 1, "R", false, 0, "")
	}

	doc.Ln(4)
	r.totalLine(doc, "Subtotal", inv.SubTotal)
	r.totalLine(doc, "Shipping", inv.ShippingFee)
	r.totalLine(doc, fmt.Sprintf("Tax (%.0f%%)", inv.TaxRate*100), inv.TaxAmount)
	doc.SetFont("Helvetica", "B", 10)
	r.totalLine(doc, "Total", inv.Total)

	return output(doc)
}

func (r *Renderer) RenderReport(invoices []domain.Invoice, start, end time.Time) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Invoice report")
	doc.Ln(10)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(55, 7, "Invoice", "1", 0, "L", false, 0, "")
	doc.CellFormat(35, 7, "Date", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, "Subtotal", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, "Tax", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, "Total", "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, inv := range invoices {
		doc.CellFormat(55, 7, inv.ID, "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, inv.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%.2f", inv.SubTotal), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%.2f", inv.TaxAmount), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%.2f", inv.Total), "1", 1, "R", false, 0, "")
	}

	s := usecase.Summarize(invoices)
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(0, 6, fmt.Sprintf("Invoices: %d", s.Count))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Revenue: %.2f", s.Revenue))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Estimated cost: %.2f", s.EstimatedCost))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Profit: %.2f", s.Profit))

	return output(doc)
}

func (r *Renderer) totalLine(doc *fpdf.Fpdf, label string, amount float64) {
	doc.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ usecase.InvoiceRenderer = (*Renderer)(nil)
