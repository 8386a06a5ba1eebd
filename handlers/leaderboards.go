package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/standings"
)

// IndividualBoard returns the individual-competition snapshot: top 10 by
// best lap, all finished runners and everyone currently on track.
func (h *Handler) IndividualBoard(c echo.Context) error {
	ctx := c.Request().Context()

	state := &models.GlobalState{}
	if err := h.db.NewSelect().Model(state).
		Where("id = ?", models.GlobalStateID).
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var laps []*models.Lap
	if err := h.db.NewSelect().Model(&laps).
		Relation("Runner").
		Where("l.competition = ?", state.Competition).
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	kringNames, err := h.kringNames(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, standings.Individual(time.Now(), state.Competition, laps, kringNames))
}

// GroupBoard returns the group-competition snapshot with per-group
// averages of each runner's best lap.
func (h *Handler) GroupBoard(c echo.Context) error {
	ctx := c.Request().Context()

	var groups []models.Group
	if err := h.db.NewSelect().Model(&groups).
		OrderExpr("g.group_number ASC").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var laps []*models.Lap
	if err := h.db.NewSelect().Model(&laps).
		Relation("Runner").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, standings.Groups(time.Now(), h.finishHour, h.finishMin, groups, laps))
}

// KringenBoard returns the inter-society snapshot, restricted to the
// configured kringen allow-list.
func (h *Handler) KringenBoard(c echo.Context) error {
	ctx := c.Request().Context()

	var allowed []models.Kring
	if err := h.db.NewSelect().Model(&allowed).
		Where("k.name IN (?)", bun.In(h.allowedKringen)).
		OrderExpr("k.id ASC").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make([]int64, len(allowed))
	for i, k := range allowed {
		ids[i] = k.ID
	}

	var laps []*models.Lap
	if len(ids) > 0 {
		if err := h.db.NewSelect().Model(&laps).
			Relation("Runner").
			Where("runner.kring_id IN (?)", bun.In(ids)).
			Scan(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, standings.Kringen(time.Now(), allowed, laps))
}

// kringNames loads the id→name mapping used by the dashboards.
func (h *Handler) kringNames(ctx context.Context) (map[int64]string, error) {
	var kringen []models.Kring
	if err := h.db.NewSelect().Model(&kringen).Scan(ctx); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(kringen))
	for _, k := range kringen {
		names[k.ID] = k.Name
	}
	return names, nil
}
