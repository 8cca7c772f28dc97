package model

import "time"

// Wedding owns seating tables, guests and rental allocations. The three cost
// fields are caches derived by the cost engine from current allocation state;
// they are only ever written by a recompute, never by table or guest
// operations directly. All monetary amounts are integer cents.
type Wedding struct {
	ID               uint64    `json:"id"`                 // weddings.id
	RentalTotalCents int64     `json:"rental_cost_total"`  // weddings.rental_cost_total
	FoodTotalCents   int64     `json:"food_cost_total"`    // weddings.food_cost_total
	TotalCents       int64     `json:"total_cost"`         // weddings.total_cost
	CreatedAt        time.Time `json:"created_at"`         // weddings.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // weddings.updated_at
}

// CostSummary is the result of a cost recomputation. The same values are
// persisted onto the wedding row before it is returned.
type CostSummary struct {
	RentalTotalCents int64 `json:"rental_total"`
	FoodTotalCents   int64 `json:"food_total"`
}
