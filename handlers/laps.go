package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/metrics"
	"github.com/sdevrieze/urenloop/race"
)

type identificationRequest struct {
	Identification string `json:"identification"`
}

// StartLap opens a lap for the runner carrying the scanned
// identification code, consuming their queue entry if any.
func (h *Handler) StartLap(c echo.Context) error {
	var req identificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Identification = strings.TrimSpace(req.Identification)
	if req.Identification == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identification is required")
	}

	lap, err := race.StartByIdentification(c.Request().Context(), h.db, req.Identification)
	if err != nil {
		return httpError(err)
	}

	metrics.LapsStarted.Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "lap started",
		"lap":     lap,
	})
}

// StartNextRunner dequeues the front of the queue and starts that runner.
func (h *Handler) StartNextRunner(c echo.Context) error {
	lap, err := race.StartNext(c.Request().Context(), h.db)
	if err != nil {
		return httpError(err)
	}

	metrics.LapsStarted.Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "lap started",
		"lap":     lap,
	})
}

// StopLap closes the runner's open lap and returns the elapsed time.
func (h *Handler) StopLap(c echo.Context) error {
	var req identificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Identification = strings.TrimSpace(req.Identification)
	if req.Identification == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identification is required")
	}

	lap, err := race.StopByIdentification(c.Request().Context(), h.db, req.Identification)
	if err != nil {
		return httpError(err)
	}

	metrics.LapsStopped.Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "lap ended",
		"lapTime": lap.Time,
	})
}

// UndoStart reverses the most recent start, restoring the runner to the
// front of the queue.
func (h *Handler) UndoStart(c echo.Context) error {
	entry, err := race.UndoLastStart(c.Request().Context(), h.db)
	if err != nil {
		return httpError(err)
	}

	metrics.StartsUndone.Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "undo successful",
		"entry":   entry,
	})
}
