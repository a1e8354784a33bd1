package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopsphere/fulfillment/internal/usecase"
)

type ReportHandler struct {
	reports *usecase.Reports
}

func NewReportHandler(reports *usecase.Reports) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// parseRange reads start/end query params as YYYY-MM-DD dates; the end day
// is inclusive.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"
	start, err := time.Parse(layout, c.Query("start"))
	if err != nil {
		fail(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(layout, c.Query("end"))
	if err != nil {
		fail(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		fail(c, http.StatusBadRequest, "end must not be before start")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *ReportHandler) GetInvoicesBetweenDates(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	invoices, summary, err := h.reports.InvoicesBetween(ctx, start, end)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "invoices": invoices, "summary": summary})
}

func (h *ReportHandler) GetInvoicesPdf(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	pdf, err := h.reports.InvoicesPDF(ctx, start, end)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoice-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
