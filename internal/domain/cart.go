package domain

import "time"

// Cart holds a user's pending lines. TotalCents always equals the sum of
// line price times quantity; every mutating transaction recomputes it
// from the line set before committing.
type Cart struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	TotalCents int64      `json:"totalCents"`
	CreatedAt  time.Time  `json:"createdAt"`
	Lines      []CartLine `json:"lines,omitempty"`
}

// CartLine pairs a product with a quantity inside one cart. Price and
// discount are snapshots of the product's special price at add or last
// sync time. A line never exists with quantity zero.
type CartLine struct {
	ID          string    `json:"id"`
	CartID      string    `json:"cartId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
	DiscountPct int       `json:"discountPct"`
	CreatedAt   time.Time `json:"createdAt"`
}
