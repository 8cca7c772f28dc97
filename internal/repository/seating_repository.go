package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/evlane/wedding-planner/internal/model"
)

// SeatingRepo provides data access for seating tables and guest assignment.
// Every mutating method runs its reads and writes inside a single
// transaction: the seating row is locked with SELECT ... FOR UPDATE before
// any occupancy count or number scan, so concurrent creates on the same
// numbering family and concurrent assignments to the same table serialise
// at the database.
type SeatingRepo struct {
	db *sql.DB
}

// NewSeatingRepo constructs a SeatingRepo bound to the given DB handle.
func NewSeatingRepo(db *sql.DB) *SeatingRepo { return &SeatingRepo{db: db} }

// CreateTable inserts a new seating table, generating its display code from
// the current maximum suffix of the table's numbering family. The UNIQUE key
// on (wedding_id, table_number) backstops the locked scan; on a duplicate-key
// failure the whole transaction is retried once.
func (r *SeatingRepo) CreateTable(ctx context.Context, t *model.SeatingTable) error {
	err := r.createTableTx(ctx, t)
	if err != nil && isDuplicateKey(err) {
		err = r.createTableTx(ctx, t)
	}
	return err
}

func (r *SeatingRepo) createTableTx(ctx context.Context, t *model.SeatingTable) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the numbering family for this wedding. Couple tables number
	// against couple rows only; all other categories share one sequence.
	q := `SELECT table_number FROM seating_tables
	      WHERE wedding_id = ? AND table_category <> 'couple' FOR UPDATE`
	if t.TableCategory == model.CategoryCouple {
		q = `SELECT table_number FROM seating_tables
		     WHERE wedding_id = ? AND table_category = 'couple' FOR UPDATE`
	}
	rows, err := tx.QueryContext(ctx, q, t.WeddingID)
	if err != nil {
		return err
	}
	var existing []string
	for rows.Next() {
		var code string
		if scanErr := rows.Scan(&code); scanErr != nil {
			rows.Close()
			return scanErr
		}
		existing = append(existing, code)
	}
	if err = rows.Close(); err != nil {
		return err
	}

	t.TableNumber = NextTableNumber(FamilyPrefix(t.TableCategory), existing)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO seating_tables (wedding_id, table_number, table_category, capacity)
		 VALUES (?, ?, ?, ?)`,
		t.WeddingID, t.TableNumber, t.TableCategory, t.Capacity,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	// Read back timestamps populated by the database.
	err = tx.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM seating_tables WHERE id = ?`, t.ID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// AssignGuests seats the listed guests at a table after verifying, under the
// table's row lock, that the full batch fits. Guest IDs belonging to a
// different wedding are silently excluded by the wedding filter on the
// UPDATE. Returns the number of guests actually assigned.
func (r *SeatingRepo) AssignGuests(ctx context.Context, weddingID, tableID uint64, guestIDs []uint64) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var category string
	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT table_category, capacity FROM seating_tables
		 WHERE id = ? AND wedding_id = ? FOR UPDATE`,
		tableID, weddingID,
	).Scan(&category, &capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTableNotFound
		}
		return 0, err
	}
	if category != model.CategoryGuest {
		return 0, ErrNotGuestTable
	}

	var occupied int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM guests WHERE table_id = ?`, tableID,
	).Scan(&occupied)
	if err != nil {
		return 0, err
	}
	if occupied+len(guestIDs) > capacity {
		return 0, ErrCapacityExceeded
	}

	placeholders := strings.Repeat("?,", len(guestIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(guestIDs)+2)
	args = append(args, tableID, weddingID)
	for _, id := range guestIDs {
		args = append(args, id)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE guests SET table_id = ? WHERE wedding_id = ? AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return int(n), nil
}

// ListByWedding returns every table of a wedding with its current guest
// count. Couple tables sort first, then guest-like tables by the numeric
// value of their display code.
func (r *SeatingRepo) ListByWedding(ctx context.Context, weddingID uint64) ([]model.TableWithGuests, error) {
	const q = `SELECT t.id, t.wedding_id, t.table_number, t.table_category, t.capacity,
	                  t.created_at, t.updated_at, COUNT(g.id)
	           FROM seating_tables t
	           LEFT JOIN guests g ON g.table_id = t.id
	           WHERE t.wedding_id = ?
	           GROUP BY t.id, t.wedding_id, t.table_number, t.table_category, t.capacity,
	                    t.created_at, t.updated_at
	           ORDER BY CASE WHEN t.table_category = 'couple' THEN 0 ELSE 1 END,
	                    CAST(SUBSTRING(t.table_number, 3) AS UNSIGNED)`
	rows, err := r.db.QueryContext(ctx, q, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.TableWithGuests, 0)
	for rows.Next() {
		var t model.TableWithGuests
		if err := rows.Scan(
			&t.ID, &t.WeddingID, &t.TableNumber, &t.TableCategory, &t.Capacity,
			&t.CreatedAt, &t.UpdatedAt, &t.GuestCount,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTable removes a table and unseats its guests in one transaction.
// Deletion is never blocked by occupancy: assigned guests have table_id set
// back to NULL, not deleted. Returns the number of guests unseated.
func (r *SeatingRepo) DeleteTable(ctx context.Context, tableID uint64) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM seating_tables WHERE id = ? FOR UPDATE`, tableID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTableNotFound
		}
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE guests SET table_id = NULL WHERE table_id = ?`, tableID,
	)
	if err != nil {
		return 0, err
	}
	unseated, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM seating_tables WHERE id = ?`, tableID,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return int(unseated), nil
}

// UpdateCapacity changes a table's capacity. The allowed range depends on
// the category (couple 2..15, everything else 1..15) and the new value must
// not drop below the table's current occupancy.
func (r *SeatingRepo) UpdateCapacity(ctx context.Context, tableID uint64, capacity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var category string
	err = tx.QueryRowContext(ctx,
		`SELECT table_category FROM seating_tables WHERE id = ? FOR UPDATE`, tableID,
	).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTableNotFound
		}
		return err
	}

	min := 1
	if category == model.CategoryCouple {
		min = 2
	}
	if capacity < min || capacity > 15 {
		return ErrCapacityOutOfRange
	}

	var occupied int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM guests WHERE table_id = ?`, tableID,
	).Scan(&occupied)
	if err != nil {
		return err
	}
	if capacity < occupied {
		return ErrCapacityConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE seating_tables SET capacity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		capacity, tableID,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// isDuplicateKey reports whether err is a MySQL duplicate entry (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
