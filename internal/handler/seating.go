package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evlane/wedding-planner/internal/model"
	"github.com/evlane/wedding-planner/internal/queue"
	"github.com/evlane/wedding-planner/internal/repository"
	queue_publisher "github.com/evlane/wedding-planner/internal/service"
)

// SeatingStore is the persistence contract the seating handlers depend on.
// Each method is atomic with respect to concurrent calls touching the same
// table or numbering family; the SQL implementation serialises through row
// locks (see repository.SeatingRepo).
type SeatingStore interface {
	CreateTable(ctx context.Context, t *model.SeatingTable) error
	AssignGuests(ctx context.Context, weddingID, tableID uint64, guestIDs []uint64) (int, error)
	ListByWedding(ctx context.Context, weddingID uint64) ([]model.TableWithGuests, error)
	DeleteTable(ctx context.Context, tableID uint64) (int, error)
	UpdateCapacity(ctx context.Context, tableID uint64, capacity int) error
}

// SeatingHandler exposes table lifecycle and guest assignment endpoints.
// Mutations publish a seating.changed event after the store commits;
// publishing is best-effort and never fails the request.
type SeatingHandler struct {
	Store   SeatingStore
	publish func(context.Context, queue.SeatingChangedEvent) error
}

// NewSeatingHandler constructs a SeatingHandler and panics if the store is nil.
func NewSeatingHandler(store SeatingStore) *SeatingHandler {
	if store == nil {
		panic("nil store passed to NewSeatingHandler")
	}
	return &SeatingHandler{
		Store:   store,
		publish: queue_publisher.PublishSeatingChanged,
	}
}

// fail writes the uniform error envelope: a stable kind tag plus a
// human-readable message.
func fail(c echo.Context, status int, kind, msg string) error {
	return c.JSON(status, echo.Map{"error": kind, "message": msg})
}

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

func (h *SeatingHandler) emit(c echo.Context, ev queue.SeatingChangedEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := h.publish(c.Request().Context(), ev); err != nil {
		log.Printf("seating: publish %s failed: %v", ev.Action, err)
	}
}

// CreateCoupleTable handles POST /v1/weddings/:wedding_id/tables/couple.
// Capacity defaults to 2 and must be at least 2; no upper bound is enforced
// at creation time, unlike capacity updates.
func (h *SeatingHandler) CreateCoupleTable(c echo.Context) error {
	weddingID, ok := pathID(c, "wedding_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid wedding id")
	}
	var body struct {
		Capacity *int `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	capacity := 2
	if body.Capacity != nil {
		capacity = *body.Capacity
	}
	if capacity < 2 {
		return fail(c, http.StatusBadRequest, "validation_error", "couple table capacity must be an integer of at least 2")
	}

	t := &model.SeatingTable{
		WeddingID:     weddingID,
		TableCategory: model.CategoryCouple,
		Capacity:      capacity,
	}
	if err := h.Store.CreateTable(c.Request().Context(), t); err != nil {
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not create table")
	}
	h.emit(c, queue.SeatingChangedEvent{
		WeddingID: weddingID, TableID: t.ID, TableNumber: t.TableNumber, Action: "table.created",
	})
	return c.JSON(http.StatusCreated, t)
}

// CreateGuestTable handles POST /v1/weddings/:wedding_id/tables. Capacity is
// required and must lie in [1,15]. The category defaults to "guest"; any
// non-couple tag is accepted and shares the guest-like numbering sequence.
func (h *SeatingHandler) CreateGuestTable(c echo.Context) error {
	weddingID, ok := pathID(c, "wedding_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid wedding id")
	}
	var body struct {
		Capacity      *int   `json:"capacity"`
		TableCategory string `json:"table_category"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if body.Capacity == nil {
		return fail(c, http.StatusBadRequest, "validation_error", "capacity is required")
	}
	if *body.Capacity < 1 || *body.Capacity > 15 {
		return fail(c, http.StatusBadRequest, "validation_error", "capacity must be an integer between 1 and 15")
	}
	category := strings.TrimSpace(body.TableCategory)
	if category == "" {
		category = model.CategoryGuest
	}
	if category == model.CategoryCouple {
		return fail(c, http.StatusBadRequest, "validation_error", "use the couple table endpoint for couple tables")
	}

	t := &model.SeatingTable{
		WeddingID:     weddingID,
		TableCategory: category,
		Capacity:      *body.Capacity,
	}
	if err := h.Store.CreateTable(c.Request().Context(), t); err != nil {
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not create table")
	}
	h.emit(c, queue.SeatingChangedEvent{
		WeddingID: weddingID, TableID: t.ID, TableNumber: t.TableNumber, Action: "table.created",
	})
	return c.JSON(http.StatusCreated, t)
}

// AssignGuests handles POST /v1/weddings/:wedding_id/tables/:table_id/guests.
// The occupancy check counts the full requested batch even though guest IDs
// from other weddings are later excluded by the store's wedding filter.
func (h *SeatingHandler) AssignGuests(c echo.Context) error {
	weddingID, ok := pathID(c, "wedding_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid wedding id")
	}
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid table id")
	}
	var body struct {
		GuestIDs []uint64 `json:"guest_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if len(body.GuestIDs) == 0 {
		return fail(c, http.StatusBadRequest, "validation_error", "guest_ids must be a non-empty list")
	}

	assigned, err := h.Store.AssignGuests(c.Request().Context(), weddingID, tableID, body.GuestIDs)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return fail(c, http.StatusBadRequest, "validation_error", "table not found for this wedding")
		case errors.Is(err, repository.ErrNotGuestTable):
			return fail(c, http.StatusBadRequest, "validation_error", "guests can only be assigned to guest tables")
		case errors.Is(err, repository.ErrCapacityExceeded):
			return fail(c, http.StatusConflict, "capacity_exceeded", "assignment would exceed table capacity")
		}
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not assign guests")
	}
	h.emit(c, queue.SeatingChangedEvent{
		WeddingID: weddingID, TableID: tableID, Action: "guests.assigned", GuestDelta: assigned,
	})
	return c.JSON(http.StatusOK, echo.Map{"assigned": assigned})
}

// ListSeating handles GET /v1/weddings/:wedding_id/seating.
func (h *SeatingHandler) ListSeating(c echo.Context) error {
	weddingID, ok := pathID(c, "wedding_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid wedding id")
	}
	tables, err := h.Store.ListByWedding(c.Request().Context(), weddingID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not load seating")
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// DeleteTable handles DELETE /v1/tables/:table_id. Deletion always succeeds
// for an existing table; seated guests are moved back to unassigned.
func (h *SeatingHandler) DeleteTable(c echo.Context) error {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid table id")
	}
	unseated, err := h.Store.DeleteTable(c.Request().Context(), tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return fail(c, http.StatusNotFound, "not_found", "table not found")
		}
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not delete table")
	}
	h.emit(c, queue.SeatingChangedEvent{
		TableID: tableID, Action: "table.deleted", GuestDelta: -unseated,
	})
	return c.JSON(http.StatusOK, echo.Map{"deleted": tableID, "guests_unassigned": unseated})
}

// UpdateTableCapacity handles PATCH /v1/tables/:table_id/capacity.
func (h *SeatingHandler) UpdateTableCapacity(c echo.Context) error {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid table id")
	}
	var body struct {
		Capacity *int `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if body.Capacity == nil {
		return fail(c, http.StatusBadRequest, "validation_error", "capacity is required")
	}

	err := h.Store.UpdateCapacity(c.Request().Context(), tableID, *body.Capacity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return fail(c, http.StatusNotFound, "not_found", "table not found")
		case errors.Is(err, repository.ErrCapacityOutOfRange):
			return fail(c, http.StatusBadRequest, "validation_error", "capacity out of range for this table category")
		case errors.Is(err, repository.ErrCapacityConflict):
			return fail(c, http.StatusConflict, "capacity_conflict", "capacity is below the table's current occupancy")
		}
		return fail(c, http.StatusInternalServerError, "data_access_error", "could not update capacity")
	}
	h.emit(c, queue.SeatingChangedEvent{
		TableID: tableID, Action: "capacity.updated",
	})
	return c.JSON(http.StatusOK, echo.Map{"id": tableID, "capacity": *body.Capacity})
}
