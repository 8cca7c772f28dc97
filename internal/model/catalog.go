package model

// InventoryAllocation records a rentable inventory item used by a wedding.
// Rows are created and removed by the inventory endpoints; the cost engine
// consumes them read-only. RentalCostCents is the per-unit rental price.
type InventoryAllocation struct {
	ID              uint64 `json:"id"`              // inventory_allocations.id
	WeddingID       uint64 `json:"wedding_id"`      // inventory_allocations.wedding_id
	InventoryItemID uint64 `json:"inventory_item_id"`
	QuantityUsed    int64  `json:"quantity_used"`
	RentalCostCents int64  `json:"rental_cost"` // per unit, in cents
}

// TablePackage assigns a catering package to a seating table. The owning
// wedding is resolved through the table.
type TablePackage struct {
	TableID   uint64 `json:"table_id"`   // table_packages.table_id
	PackageID uint64 `json:"package_id"` // table_packages.package_id
}

// PackageMenuItem links a package to one of its menu items. A nil quantity
// counts as 1 when costs are aggregated.
type PackageMenuItem struct {
	PackageID  uint64 `json:"package_id"`
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   *int64 `json:"quantity"` // package_menu_items.quantity (nullable)
}

// MenuItem is a catalog entry priced in cents.
type MenuItem struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	MenuCostCents int64  `json:"menu_cost"`
}
