package domain

import (
	"fmt"
	"strings"
)

// OrderStatus is a closed enumeration. Free-form status strings are not
// accepted anywhere.
type OrderStatus string

const (
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAccepted:  {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus validates a status string, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("unknown order status %q: %w", s, ErrInvalid)
	}
	return status, nil
}

// CanTransition reports whether an order may move from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
