package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
)

// GetGroups returns all groups ordered by group number.
func (h *Handler) GetGroups(c echo.Context) error {
	var groups []models.Group
	err := h.db.NewSelect().Model(&groups).
		OrderExpr("g.group_number ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

type createGroupRequest struct {
	GroupName   string `json:"groupName"`
	GroupNumber *int   `json:"groupNumber"`
}

// CreateGroup inserts a group; when no number is given the next free one
// is assigned.
func (h *Handler) CreateGroup(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.GroupName = strings.TrimSpace(req.GroupName)
	if req.GroupName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "group name is required")
	}

	ctx := c.Request().Context()

	number := 0
	if req.GroupNumber != nil {
		number = *req.GroupNumber
	} else {
		var maxNumber sql.NullInt64
		err := h.db.NewSelect().
			TableExpr("groups").
			ColumnExpr("MAX(group_number)").
			Scan(ctx, &maxNumber)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		number = int(maxNumber.Int64) + 1
	}

	group := &models.Group{
		GroupNumber: number,
		GroupName:   req.GroupName,
	}
	if _, err := h.db.NewInsert().Model(group).Exec(ctx); err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusConflict, "a group with this number already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, group)
}
