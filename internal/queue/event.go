// Package queue defines message payloads exchanged over the broker and the
// background consumer that records them.
package queue

// SeatingChangedEvent is published after a seating mutation commits. It
// carries enough context for downstream consumers (notifications, planner
// dashboards, analytics) without querying the primary database.
type SeatingChangedEvent struct {
	WeddingID   uint64 `json:"wedding_id"`
	TableID     uint64 `json:"table_id"`
	TableNumber string `json:"table_number,omitempty"`
	Action      string `json:"action"` // table.created | guests.assigned | table.deleted | capacity.updated
	GuestDelta  int    `json:"guest_delta,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

// CostsRecomputedEvent is published after a wedding's cost summary has been
// re-derived and persisted.
type CostsRecomputedEvent struct {
	WeddingID        uint64 `json:"wedding_id"`
	RentalTotalCents int64  `json:"rental_total_cents"`
	FoodTotalCents   int64  `json:"food_total_cents"`
	TotalCents       int64  `json:"total_cents"`
	OccurredAt       string `json:"occurred_at"`
}
