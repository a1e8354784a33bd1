package usecase

import (
	"context"
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
)

// costRatio estimates cost of goods as a share of net (pre-tax, pre-fee)
// revenue for the consolidated report.
const costRatio = 0.70

type ReportSummary struct {
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	EstimatedCost float64 `json:"estimatedCost"`
	Profit        float64 `json:"profit"`
}

type Reports struct {
	invoices InvoiceRepo
	renderer InvoiceRenderer
}

func NewReports(invoices InvoiceRepo, renderer InvoiceRenderer) *Reports {
	return &Reports{invoices: invoices, renderer: renderer}
}

func (uc *Reports) InvoicesBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, ReportSummary, error) {
	invoices, err := uc.invoices.ListBetween(ctx, start, end)
	if err != nil {
		return nil, ReportSummary{}, err
	}
	return invoices, Summarize(invoices), nil
}

func (uc *Reports) InvoicesPDF(ctx context.Context, start, end time.Time) ([]byte, error) {
	invoices, err := uc.invoices.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderReport(invoices, start, end)
}

// Summarize derives the revenue/cost/profit rollup over a set of invoices.
func Summarize(invoices []domain.Invoice) ReportSummary {
	var s ReportSummary
	s.Count = len(invoices)
	var net float64
	for _, inv := range invoices {
		s.Revenue += inv.Total
		net += inv.SubTotal
	}
	s.Revenue = round2(s.Revenue)
	s.EstimatedCost = round2(net * costRatio)
	s.Profit = round2(s.Revenue - s.EstimatedCost)
	return s
}
