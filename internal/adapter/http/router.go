package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopsphere/fulfillment/internal/adapter/http/middleware"
	"github.com/shopsphere/fulfillment/internal/logging"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewOrderRouter serves the order service's synchronous RPC surface.
func NewOrderRouter(oh *OrderHandler, rh *RefundHandler) *gin.Engine {
	r := newEngine()

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", oh.CreateOrder)
		v1.GET("/orders/:id", oh.GetOrderByID)
		v1.GET("/orders/:id/status", oh.GetOrderStatus)
		v1.PUT("/orders/:id/status", oh.UpdateOrderStatus)
		v1.GET("/users/:userId/orders", oh.GetOrderHistory)

		v1.POST("/refunds", rh.RequestRefund)
		v1.GET("/refunds", rh.GetAllRefunds)
		v1.PUT("/refunds/:id/status", rh.ChangeRefundStatus)
	}

	return r
}

// NewReportRouter serves the notification service's reporting surface.
func NewReportRouter(h *ReportHandler) *gin.Engine {
	r := newEngine()

	v1 := r.Group("/v1")
	{
		v1.GET("/invoices", h.GetInvoicesBetweenDates)
		v1.GET("/invoices/pdf", h.GetInvoicesPdf)
	}

	return r
}

// NewHealthRouter serves only health and metrics, for the stateless
// payment service.
func NewHealthRouter() *gin.Engine {
	return newEngine()
}
