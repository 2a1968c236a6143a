package domain

import "time"

// Product is the inventory record the cart and checkout flows read and
// decrement. SpecialCents is derived from PriceCents and DiscountPct and
// recomputed on every pricing write, never stored stale.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"priceCents"`
	DiscountPct  int       `json:"discountPct"`
	SpecialCents int64     `json:"specialCents"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SpecialPriceCents applies the discount percentage to a price in cents.
func SpecialPriceCents(priceCents int64, discountPct int) int64 {
	return priceCents - priceCents*int64(discountPct)/100
}
