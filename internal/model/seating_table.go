package model

import "time"

// Table categories. Only "couple" carries special numbering and capacity
// rules; every other category belongs to the guest-like family and shares
// one numbering sequence per wedding.
const (
	CategoryCouple = "couple"
	CategoryGuest  = "guest"
)

// SeatingTable describes one physical table at a wedding. The display code
// in TableNumber is generated once at creation ("C-NNN" for couple tables,
// "T-NNN" for everything else) and is never reused within a wedding and
// numbering family, even after the table is deleted.
type SeatingTable struct {
	ID            uint64    `json:"id"`             // seating_tables.id
	WeddingID     uint64    `json:"wedding_id"`     // seating_tables.wedding_id
	TableNumber   string    `json:"table_number"`   // seating_tables.table_number
	TableCategory string    `json:"table_category"` // seating_tables.table_category
	Capacity      int       `json:"capacity"`       // seating_tables.capacity
	CreatedAt     time.Time `json:"created_at"`     // seating_tables.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // seating_tables.updated_at
}

// TableWithGuests is a seating table together with its current occupancy,
// as returned by the seating list.
type TableWithGuests struct {
	SeatingTable
	GuestCount int `json:"guest_count"`
}
