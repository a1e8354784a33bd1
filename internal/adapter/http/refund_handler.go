package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type RefundHandler struct {
	refunds *usecase.Refunds
}

func NewRefundHandler(refunds *usecase.Refunds) *RefundHandler {
	return &RefundHandler{refunds: refunds}
}

type requestRefundReq struct {
	OrderID string `json:"orderId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

func (h *RefundHandler) RequestRefund(c *gin.Context) {
	var req requestRefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	refund, err := h.refunds.Request(ctx, req.OrderID, req.UserID, req.Reason)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": true, "refund": refund})
}

type changeRefundStatusReq struct {
	Status     string `json:"status" binding:"required"` // APPROVED | REJECTED
	ReviewedBy string `json:"reviewedBy" binding:"required"`
}

// ChangeRefundStatus is the administrative approve/reject action.
func (h *RefundHandler) ChangeRefundStatus(c *gin.Context) {
	var req changeRefundStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request")
		return
	}

	to, err := domain.ParseRefundStatus(req.Status)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	refund, err := h.refunds.Review(ctx, c.Param("id"), to, req.ReviewedBy)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "refund": refund})
}

func (h *RefundHandler) GetAllRefunds(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	refunds, err := h.refunds.List(ctx)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "refunds": refunds})
}
