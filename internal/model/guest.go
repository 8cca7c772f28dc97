package model

import "time"

// Guest belongs to exactly one wedding and is optionally assigned to a
// single seating table. TableID is nil while the guest is unseated; deleting
// a table moves its guests back to nil rather than deleting them.
type Guest struct {
	ID        uint64    `json:"id"`         // guests.id
	WeddingID uint64    `json:"wedding_id"` // guests.wedding_id
	FullName  string    `json:"full_name"`  // guests.full_name
	TableID   *uint64   `json:"table_id"`   // guests.table_id (nullable)
	CreatedAt time.Time `json:"created_at"` // guests.created_at
	UpdatedAt time.Time `json:"updated_at"` // guests.updated_at
}
