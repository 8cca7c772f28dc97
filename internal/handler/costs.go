package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evlane/wedding-planner/internal/model"
	"github.com/evlane/wedding-planner/internal/queue"
	queue_publisher "github.com/evlane/wedding-planner/internal/service"
)

// CostStore is the persistence contract for cost recomputation.
type CostStore interface {
	Recompute(ctx context.Context, weddingID uint64) (model.CostSummary, error)
}

// CostHandler exposes the explicit, caller-invoked cost recomputation.
// There are no triggers: the cached fields on the wedding row go stale the
// moment an allocation changes and stay stale until this endpoint runs.
type CostHandler struct {
	Store   CostStore
	publish func(context.Context, queue.CostsRecomputedEvent) error
}

// NewCostHandler constructs a CostHandler and panics if the store is nil.
func NewCostHandler(store CostStore) *CostHandler {
	if store == nil {
		panic("nil store passed to NewCostHandler")
	}
	return &CostHandler{
		Store:   store,
		publish: queue_publisher.PublishCostsRecomputed,
	}
}

// Recompute handles POST /v1/weddings/:wedding_id/costs/recompute. The
// operation is idempotent; errors here are data-access failures only.
func (h *CostHandler) Recompute(c echo.Context) error {
	weddingID, ok := pathID(c, "wedding_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid wedding id")
	}
	sum, err := h.Store.Recompute(c.Request().Context(), weddingID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not recompute costs")
	}
	ev := queue.CostsRecomputedEvent{
		WeddingID:        weddingID,
		RentalTotalCents: sum.RentalTotalCents,
		FoodTotalCents:   sum.FoodTotalCents,
		TotalCents:       sum.RentalTotalCents + sum.FoodTotalCents,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.publish(c.Request().Context(), ev); err != nil {
		log.Printf("costs: publish recompute failed: %v", err)
	}
	return c.JSON(http.StatusOK, sum)
}
