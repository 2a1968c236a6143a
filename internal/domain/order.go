package domain

import "time"

// Order is the frozen result of a checkout. Everything except Status is
// immutable once created.
type Order struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	OrderDate  time.Time   `json:"orderDate"`
	TotalCents int64       `json:"totalCents"`
	Status     OrderStatus `json:"status"`
	AddressID  string      `json:"addressId"`
	Payment    *Payment    `json:"payment,omitempty"`
	Lines      []OrderLine `json:"lines,omitempty"`
}

// OrderLine is the immutable snapshot of a cart line at checkout time.
type OrderLine struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
	DiscountPct int    `json:"discountPct"`
}

// Payment carries the method plus opaque gateway pass-through fields.
// The core stores them verbatim and never interprets them.
type Payment struct {
	ID                     string `json:"id"`
	Method                 string `json:"method"`
	GatewayName            string `json:"gatewayName,omitempty"`
	GatewayPaymentID       string `json:"gatewayPaymentId,omitempty"`
	GatewayStatus          string `json:"gatewayStatus,omitempty"`
	GatewayResponseMessage string `json:"gatewayResponseMessage,omitempty"`
}
