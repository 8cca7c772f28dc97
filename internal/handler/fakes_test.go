package handler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/evlane/wedding-planner/internal/model"
	"github.com/evlane/wedding-planner/internal/repository"
)

// memSeating is an in-memory SeatingStore for handler tests. A single mutex
// gives every operation the same atomicity the SQL repository gets from its
// row-locked transactions, so the capacity and numbering invariants can be
// exercised under real concurrency.
type memSeating struct {
	mu      sync.Mutex
	nextID  uint64
	tables  map[uint64]*model.SeatingTable
	guests  map[uint64]*memGuest
	failAll bool
}

type memGuest struct {
	weddingID uint64
	tableID   *uint64
}

func newMemSeating() *memSeating {
	return &memSeating{
		tables: make(map[uint64]*model.SeatingTable),
		guests: make(map[uint64]*memGuest),
	}
}

func (s *memSeating) addGuest(weddingID uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.guests[s.nextID] = &memGuest{weddingID: weddingID}
	return s.nextID
}

func (s *memSeating) guestTable(guestID uint64) *uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guests[guestID].tableID
}

func (s *memSeating) CreateTable(_ context.Context, t *model.SeatingTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return fmt.Errorf("store down")
	}
	prefix := repository.FamilyPrefix(t.TableCategory)
	var existing []string
	for _, tb := range s.tables {
		if tb.WeddingID != t.WeddingID {
			continue
		}
		if repository.FamilyPrefix(tb.TableCategory) == prefix {
			existing = append(existing, tb.TableNumber)
		}
	}
	t.TableNumber = repository.NextTableNumber(prefix, existing)
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.tables[t.ID] = &cp
	return nil
}

func (s *memSeating) AssignGuests(_ context.Context, weddingID, tableID uint64, guestIDs []uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tb, ok := s.tables[tableID]
	if !ok || tb.WeddingID != weddingID {
		return 0, repository.ErrTableNotFound
	}
	if tb.TableCategory != model.CategoryGuest {
		return 0, repository.ErrNotGuestTable
	}
	occupied := s.occupancyLocked(tableID)
	if occupied+len(guestIDs) > tb.Capacity {
		return 0, repository.ErrCapacityExceeded
	}
	assigned := 0
	for _, id := range guestIDs {
		g, ok := s.guests[id]
		if !ok || g.weddingID != weddingID {
			continue // other weddings' guests are silently excluded
		}
		tid := tableID
		g.tableID = &tid
		assigned++
	}
	return assigned, nil
}

func (s *memSeating) ListByWedding(_ context.Context, weddingID uint64) ([]model.TableWithGuests, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TableWithGuests, 0)
	for _, tb := range s.tables {
		if tb.WeddingID != weddingID {
			continue
		}
		out = append(out, model.TableWithGuests{
			SeatingTable: *tb,
			GuestCount:   s.occupancyLocked(tb.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ci := out[i].TableCategory == model.CategoryCouple
		cj := out[j].TableCategory == model.CategoryCouple
		if ci != cj {
			return ci
		}
		pi := repository.FamilyPrefix(out[i].TableCategory)
		pj := repository.FamilyPrefix(out[j].TableCategory)
		return repository.NumberSuffix(pi, out[i].TableNumber) < repository.NumberSuffix(pj, out[j].TableNumber)
	})
	return out, nil
}

func (s *memSeating) DeleteTable(_ context.Context, tableID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[tableID]; !ok {
		return 0, repository.ErrTableNotFound
	}
	unseated := 0
	for _, g := range s.guests {
		if g.tableID != nil && *g.tableID == tableID {
			g.tableID = nil
			unseated++
		}
	}
	delete(s.tables, tableID)
	return unseated, nil
}

func (s *memSeating) UpdateCapacity(_ context.Context, tableID uint64, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tb, ok := s.tables[tableID]
	if !ok {
		return repository.ErrTableNotFound
	}
	min := 1
	if tb.TableCategory == model.CategoryCouple {
		min = 2
	}
	if capacity < min || capacity > 15 {
		return repository.ErrCapacityOutOfRange
	}
	if capacity < s.occupancyLocked(tableID) {
		return repository.ErrCapacityConflict
	}
	tb.Capacity = capacity
	return nil
}

func (s *memSeating) occupancyLocked(tableID uint64) int {
	n := 0
	for _, g := range s.guests {
		if g.tableID != nil && *g.tableID == tableID {
			n++
		}
	}
	return n
}

// memCosts is an in-memory CostStore that aggregates allocation state with
// the same formula the SQL repository expresses in its joins.
type memCosts struct {
	mu           sync.Mutex
	allocations  []model.InventoryAllocation
	packages     []model.TablePackage
	packageItems []model.PackageMenuItem
	menuItems    map[uint64]model.MenuItem
	tableWedding map[uint64]uint64 // table id -> wedding id
	persisted    map[uint64]model.CostSummary
	failAll      bool
}

func newMemCosts() *memCosts {
	return &memCosts{
		menuItems:    make(map[uint64]model.MenuItem),
		tableWedding: make(map[uint64]uint64),
		persisted:    make(map[uint64]model.CostSummary),
	}
}

func (s *memCosts) Recompute(_ context.Context, weddingID uint64) (model.CostSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return model.CostSummary{}, fmt.Errorf("store down")
	}
	var sum model.CostSummary
	for _, a := range s.allocations {
		if a.WeddingID == weddingID {
			sum.RentalTotalCents += a.QuantityUsed * a.RentalCostCents
		}
	}
	for _, tp := range s.packages {
		if s.tableWedding[tp.TableID] != weddingID {
			continue
		}
		for _, pmi := range s.packageItems {
			if pmi.PackageID != tp.PackageID {
				continue
			}
			qty := int64(1)
			if pmi.Quantity != nil {
				qty = *pmi.Quantity
			}
			sum.FoodTotalCents += s.menuItems[pmi.MenuItemID].MenuCostCents * qty
		}
	}
	s.persisted[weddingID] = sum
	return sum, nil
}
