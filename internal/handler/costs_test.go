package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlane/wedding-planner/internal/model"
	"github.com/evlane/wedding-planner/internal/queue"
)

func newTestCostHandler(store CostStore) *CostHandler {
	h := NewCostHandler(store)
	h.publish = func(context.Context, queue.CostsRecomputedEvent) error { return nil }
	return h
}

func decodeSummary(t *testing.T, body []byte) model.CostSummary {
	t.Helper()
	var sum model.CostSummary
	require.NoError(t, json.Unmarshal(body, &sum))
	return sum
}

func TestRecomputeWeddingCosts(t *testing.T) {
	store := newMemCosts()
	h := newTestCostHandler(store)

	// one rental line: 2 units at 500 each
	store.allocations = append(store.allocations, model.InventoryAllocation{
		WeddingID: 1, InventoryItemID: 10, QuantityUsed: 2, RentalCostCents: 500,
	})
	// one package on a table of this wedding, with two menu items (100, 150)
	store.tableWedding[3] = 1
	store.packages = append(store.packages, model.TablePackage{TableID: 3, PackageID: 20})
	store.menuItems[100] = model.MenuItem{ID: 100, MenuCostCents: 100}
	store.menuItems[101] = model.MenuItem{ID: 101, MenuCostCents: 150}
	store.packageItems = append(store.packageItems,
		model.PackageMenuItem{PackageID: 20, MenuItemID: 100},
		model.PackageMenuItem{PackageID: 20, MenuItemID: 101},
	)

	rec := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decodeSummary(t, rec.Body.Bytes())
	assert.Equal(t, int64(1000), sum.RentalTotalCents)
	assert.Equal(t, int64(250), sum.FoodTotalCents)
	assert.Equal(t, sum, store.persisted[1])
}

func TestRecomputeIsIdempotent(t *testing.T) {
	store := newMemCosts()
	h := newTestCostHandler(store)
	store.allocations = append(store.allocations, model.InventoryAllocation{
		WeddingID: 4, InventoryItemID: 1, QuantityUsed: 3, RentalCostCents: 1200,
	})

	first := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "4"})
	second := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "4"})
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, decodeSummary(t, first.Body.Bytes()), decodeSummary(t, second.Body.Bytes()))
}

func TestRecomputeEmptyWedding(t *testing.T) {
	h := newTestCostHandler(newMemCosts())

	rec := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "9"})
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decodeSummary(t, rec.Body.Bytes())
	assert.Zero(t, sum.RentalTotalCents)
	assert.Zero(t, sum.FoodTotalCents)
}

func TestRecomputeMenuItemQuantity(t *testing.T) {
	store := newMemCosts()
	h := newTestCostHandler(store)

	qty := int64(4)
	store.tableWedding[1] = 2
	store.packages = append(store.packages, model.TablePackage{TableID: 1, PackageID: 5})
	store.menuItems[7] = model.MenuItem{ID: 7, MenuCostCents: 300}
	store.packageItems = append(store.packageItems,
		model.PackageMenuItem{PackageID: 5, MenuItemID: 7, Quantity: &qty},
	)

	rec := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1200), decodeSummary(t, rec.Body.Bytes()).FoodTotalCents)
}

func TestRecomputeStoreFailure(t *testing.T) {
	store := newMemCosts()
	store.failAll = true
	h := newTestCostHandler(store)

	rec := call(t, h.Recompute, http.MethodPost, "", map[string]string{"wedding_id": "1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "data_access_error", errorKind(t, rec))
}
