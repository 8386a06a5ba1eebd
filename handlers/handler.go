package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/logos"
	"github.com/sdevrieze/urenloop/race"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	JWTKey []byte

	allowedKringen []string
	finishHour     int
	finishMin      int
	logos          logos.Store
}

// New creates a Handler with the given database connection, JWT signing
// key, kringen allow-list, group-board finish time and logo store.
func New(db *bun.DB, jwtKey []byte, allowedKringen []string, finishHour, finishMin int, logoStore logos.Store) *Handler {
	return &Handler{
		db:             db,
		JWTKey:         jwtKey,
		allowedKringen: allowedKringen,
		finishHour:     finishHour,
		finishMin:      finishMin,
		logos:          logoStore,
	}
}

// httpError maps race-package sentinel errors onto HTTP statuses; store
// failures stay 500s with a short message.
func httpError(err error) error {
	switch {
	case errors.Is(err, race.ErrRunnerNotFound),
		errors.Is(err, race.ErrQueueEntryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, race.ErrAlreadyRunning),
		errors.Is(err, race.ErrNoOpenLap),
		errors.Is(err, race.ErrQueueEmpty),
		errors.Is(err, race.ErrNothingToUndo):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// isDuplicateKey detects unique-constraint violations across the Postgres
// driver and the SQLite test harness.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}
