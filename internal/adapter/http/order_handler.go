package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	orders *usecase.Orders
}

func NewOrderHandler(create *usecase.CreateOrder, orders *usecase.Orders) *OrderHandler {
	return &OrderHandler{create: create, orders: orders}
}

type cardReq struct {
	Number string `json:"number" binding:"required"`
	CVV    string `json:"cvv" binding:"required"`
	Expiry string `json:"expiry" binding:"required"`
}

type itemReq struct {
	ProductID   string  `json:"productId" binding:"required"`
	ProductName string  `json:"productName" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
}

type createOrderReq struct {
	UserID          string    `json:"userId" binding:"required"`
	ShippingAddress string    `json:"shippingAddress" binding:"required"`
	Card            cardReq   `json:"card" binding:"required"`
	Items           []itemReq `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder accepts the checkout, persists the order and kicks off the
// payment saga. The response returns immediately; settlement happens
// asynchronously.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Card:            domain.Card{Number: req.Card.Number, CVV: req.Card.CVV, Expiry: req.Card.Expiry},
		Items:           items,
		IdempotencyKey:  c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	code := http.StatusAccepted
	if out.Replay {
		code = http.StatusOK
	}
	c.JSON(code, gin.H{"status": true, "orderId": out.OrderID, "orderStatus": out.Status})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request")
		return
	}

	to, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status, err := h.orders.UpdateStatus(ctx, c.Param("id"), to)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "orderStatus": status})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.orders.GetByID(ctx, c.Param("id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "order": order})
}

func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, err := h.orders.GetStatus(ctx, c.Param("id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "orderStatus": status})
}

func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	history, err := h.orders.History(ctx, c.Param("userId"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "orders": history})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"status": false, "message": msg})
}

// failFromErr maps usecase sentinels onto the response taxonomy:
// validation 400, not-found 404, conflict 409, anything else 500.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCard),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrUnknownRefundStatus),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrMissingAddress):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrRefundNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrRefundExists),
		errors.Is(err, usecase.ErrRefundReviewed),
		errors.Is(err, usecase.ErrDuplicateRequest):
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}
