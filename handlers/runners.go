package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/models"
)

type createRunnerRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Identification string `json:"identification"`
	KringID        int64  `json:"kringId"`
	GroupNumber    int    `json:"groupNumber"`
	TestTime       string `json:"testTime"`
	FirstYear      bool   `json:"firstYear"`
}

// CreateRunner registers a new runner.
func (h *Handler) CreateRunner(c echo.Context) error {
	var req createRunnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Identification = strings.TrimSpace(req.Identification)

	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first and last name are required")
	}
	if req.Identification == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identification is required")
	}

	runner := &models.Runner{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Identification:   req.Identification,
		KringID:          req.KringID,
		GroupNumber:      req.GroupNumber,
		RegistrationTime: time.Now(),
		TestTime:         req.TestTime,
		FirstYear:        req.FirstYear,
	}

	if _, err := h.db.NewInsert().Model(runner).Exec(c.Request().Context()); err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusConflict, "identification already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, runner)
}

// SearchRunners matches runners by substring over first name, last name
// and identification code. The terms param is a JSON array of strings.
func (h *Handler) SearchRunners(c echo.Context) error {
	raw := c.QueryParam("terms")
	if raw == "" {
		raw = "[]"
	}

	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "terms must be a JSON array of strings")
	}

	var runners []models.Runner
	q := h.db.NewSelect().Model(&runners).OrderExpr("ru.id ASC")

	if len(terms) > 0 {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, term := range terms {
				pattern := fmt.Sprintf("%%%s%%", strings.ToLower(term))
				q = q.WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.
						WhereOr("LOWER(ru.first_name) LIKE ?", pattern).
						WhereOr("LOWER(ru.last_name) LIKE ?", pattern).
						WhereOr("LOWER(ru.identification) LIKE ?", pattern)
				})
			}
			return q
		})
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, runners)
}
