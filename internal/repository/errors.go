// Package repository defines error values shared across the data access
// layer. These sentinels let handlers distinguish failure classes without
// inspecting SQL errors: validation problems map to 400, missing rows to
// 404, and capacity conflicts to 409.
package repository

import "errors"

// ErrTableNotFound is returned when a seating table lookup yields no row,
// or when the table exists but belongs to a different wedding.
var ErrTableNotFound = errors.New("seating table not found")

// ErrNotGuestTable is returned when guests are assigned to a table whose
// category does not accept guest assignment (anything other than "guest").
var ErrNotGuestTable = errors.New("table does not accept guest assignment")

// ErrCapacityExceeded is returned when an assignment would push a table's
// occupancy past its capacity.
var ErrCapacityExceeded = errors.New("table capacity exceeded")

// ErrCapacityConflict is returned when a capacity update would drop the
// limit below the number of guests already seated at the table.
var ErrCapacityConflict = errors.New("capacity below current occupancy")

// ErrCapacityOutOfRange is returned when a requested capacity is outside
// the allowed range for the table's category.
var ErrCapacityOutOfRange = errors.New("capacity out of range for category")
