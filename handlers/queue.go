package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/race"
)

// GetQueue returns the start queue in order with the joined runners.
func (h *Handler) GetQueue(c echo.Context) error {
	var entries []models.QueueEntry
	err := h.db.NewSelect().Model(&entries).
		Relation("Runner").
		OrderExpr("q.queue_place ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

type enqueueRequest struct {
	RunnerID int64 `json:"runnerId"`
}

// AddToQueue appends a runner to the back of the queue.
func (h *Handler) AddToQueue(c echo.Context) error {
	var req enqueueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.RunnerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "runnerId is required")
	}

	entry, err := race.Enqueue(c.Request().Context(), h.db, req.RunnerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// RemoveFromQueue deletes the entry holding the given rank. Remaining
// ranks stay sparse until the next reorder.
func (h *Handler) RemoveFromQueue(c echo.Context) error {
	rank := c.QueryParam("rank")
	if rank == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing rank param")
	}
	place, err := strconv.Atoi(rank)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "rank must be an integer")
	}

	if err := race.RemoveByPlace(c.Request().Context(), h.db, place); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

type reorderItem struct {
	ID int64 `json:"id"`
}

// ReorderQueue republishes the full queue order; ranks are assigned from
// list position.
func (h *Handler) ReorderQueue(c echo.Context) error {
	var items []reorderItem
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	if err := race.Reorder(c.Request().Context(), h.db, ids); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "queue order updated"})
}
