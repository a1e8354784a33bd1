package domain

import "time"

type InvoiceItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// Invoice is built by the payment service and persisted once by the
// notification service. InvoiceID is generated at payment time,
// independently of the order id, so a retried settlement never clashes
// with an earlier attempt.
type Invoice struct {
	ID              string        `json:"invoiceId"`
	OrderID         string        `json:"orderId"`
	UserID          string        `json:"userId"`
	Items           []InvoiceItem `json:"items"`
	SubTotal        float64       `json:"subTotal"`
	ShippingFee     float64       `json:"shippingFee"`
	TaxRate         float64       `json:"taxRate"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	ShippingAddress string        `json:"shippingAddress"`
	MaskedCard      string        `json:"maskedCard"`
	PaymentMethod   string        `json:"paymentMethod"`
	CreatedAt       time.Time     `json:"createdAt"`
}
