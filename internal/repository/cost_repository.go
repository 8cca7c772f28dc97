package repository

import (
	"context"
	"database/sql"

	"github.com/evlane/wedding-planner/internal/model"
)

// CostRepo derives and persists a wedding's cost summary from current
// allocation state. The recompute is a pure read-then-write over the
// allocation tables: running it twice without an intervening allocation
// change yields identical totals.
type CostRepo struct {
	db *sql.DB
}

// NewCostRepo constructs a CostRepo bound to the given DB handle.
func NewCostRepo(db *sql.DB) *CostRepo { return &CostRepo{db: db} }

// Recompute sums the wedding's rental line items and package menu costs and
// writes rental_cost_total, food_cost_total and their sum onto the wedding
// row. A wedding ID with no matching row still returns the computed totals;
// the zero-row UPDATE is not treated as an error.
func (r *CostRepo) Recompute(ctx context.Context, weddingID uint64) (model.CostSummary, error) {
	var sum model.CostSummary

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return sum, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity_used * rental_cost), 0)
		 FROM inventory_allocations
		 WHERE wedding_id = ?`,
		weddingID,
	).Scan(&sum.RentalTotalCents)
	if err != nil {
		return model.CostSummary{}, err
	}

	// Packages reach the wedding through their table; a package with no
	// menu items simply joins to nothing and contributes 0.
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(mi.menu_cost * COALESCE(pmi.quantity, 1)), 0)
		 FROM table_packages tp
		 JOIN seating_tables st ON st.id = tp.table_id
		 JOIN package_menu_items pmi ON pmi.package_id = tp.package_id
		 JOIN menu_items mi ON mi.id = pmi.menu_item_id
		 WHERE st.wedding_id = ?`,
		weddingID,
	).Scan(&sum.FoodTotalCents)
	if err != nil {
		return model.CostSummary{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE weddings
		 SET rental_cost_total = ?, food_cost_total = ?, total_cost = ?
		 WHERE id = ?`,
		sum.RentalTotalCents, sum.FoodTotalCents,
		sum.RentalTotalCents+sum.FoodTotalCents, weddingID,
	); err != nil {
		return model.CostSummary{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.CostSummary{}, err
	}
	committed = true
	return sum, nil
}
