package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
)

// DevReset clears laps, queue and the undo log, then reseeds the first
// three runners into the queue. The route is only registered when the
// dev-reset config gate is on; it must never reach a production build.
func (h *Handler) DevReset(c echo.Context) error {
	ctx := c.Request().Context()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, model := range []interface{}{
		(*models.Lap)(nil),
		(*models.QueueEntry)(nil),
		(*models.UndoLog)(nil),
	} {
		if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	var runners []models.Runner
	if err := tx.NewSelect().Model(&runners).
		OrderExpr("ru.id ASC").
		Limit(3).
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i, r := range runners {
		entry := &models.QueueEntry{
			RunnerID:   r.ID,
			QueuePlace: i + 1,
		}
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err = tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	return c.JSON(http.StatusOK, map[string]string{"message": "reset successful"})
}
