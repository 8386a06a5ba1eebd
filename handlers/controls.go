package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
)

type controlsRunner struct {
	Runner    *models.Runner `json:"runner"`
	LapTime   string         `json:"lapTime,omitempty"`
	StartTime *time.Time     `json:"startTime,omitempty"`
}

type controlsData struct {
	PreviousRunner *controlsRunner `json:"previousRunner"`
	CurrentRunner  *controlsRunner `json:"currentRunner"`
	NextRunner     *models.Runner  `json:"nextRunner"`
	Raining        bool            `json:"raining"`
}

// ControlsData feeds the start-line operator page: the runner who last
// finished, the runner currently on track and the next one in the queue.
// Previous and current come from lap state, not from guessing at
// timestamp order.
func (h *Handler) ControlsData(c echo.Context) error {
	ctx := c.Request().Context()
	out := controlsData{}

	lastFinished := &models.Lap{}
	err := h.db.NewSelect().Model(lastFinished).
		Relation("Runner").
		Where("l.time != ?", models.PendingTime).
		OrderExpr("l.start_time DESC").
		Limit(1).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		out.PreviousRunner = &controlsRunner{
			Runner:  lastFinished.Runner,
			LapTime: lastFinished.Time,
		}
	}

	open := &models.Lap{}
	err = h.db.NewSelect().Model(open).
		Relation("Runner").
		Where("l.time = ?", models.PendingTime).
		OrderExpr("l.start_time DESC").
		Limit(1).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		start := open.StartTime
		out.CurrentRunner = &controlsRunner{
			Runner:    open.Runner,
			StartTime: &start,
		}
	}

	next := &models.QueueEntry{}
	err = h.db.NewSelect().Model(next).
		Relation("Runner").
		OrderExpr("q.queue_place ASC").
		Limit(1).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		out.NextRunner = next.Runner
	}

	state := &models.GlobalState{}
	err = h.db.NewSelect().Model(state).
		Where("id = ?", models.GlobalStateID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out.Raining = state.Raining

	return c.JSON(http.StatusOK, out)
}
