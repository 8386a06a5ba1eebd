package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
)

// GetGlobalState returns the singleton event state row.
func (h *Handler) GetGlobalState(c echo.Context) error {
	state := &models.GlobalState{}
	err := h.db.NewSelect().Model(state).
		Where("id = ?", models.GlobalStateID).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

type rainingRequest struct {
	Raining *bool `json:"raining"`
}

// UpdateGlobalState sets the raining flag.
func (h *Handler) UpdateGlobalState(c echo.Context) error {
	var req rainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Raining == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "raining is required")
	}

	state := &models.GlobalState{}
	_, err := h.db.NewUpdate().Model(state).
		Set("raining = ?", *req.Raining).
		Where("id = ?", models.GlobalStateID).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.GetGlobalState(c)
}

type competitionRequest struct {
	Competition *int `json:"competition"`
}

// GetCompetition returns the active competition selector.
func (h *Handler) GetCompetition(c echo.Context) error {
	return h.GetGlobalState(c)
}

// UpdateCompetition sets the active competition selector.
func (h *Handler) UpdateCompetition(c echo.Context) error {
	var req competitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Competition == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "competition must be a number")
	}

	state := &models.GlobalState{}
	_, err := h.db.NewUpdate().Model(state).
		Set("competition = ?", *req.Competition).
		Where("id = ?", models.GlobalStateID).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.GetGlobalState(c)
}
