package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/logos"
	"github.com/sdevrieze/urenloop/models"
)

// GetKringen returns all kringen.
func (h *Handler) GetKringen(c echo.Context) error {
	var kringen []models.Kring
	err := h.db.NewSelect().Model(&kringen).
		OrderExpr("k.id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, kringen)
}

// KringLogo streams the logo asset for a kring name.
func (h *Handler) KringLogo(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing kring name")
	}

	body, contentType, err := h.logos.Get(c.Request().Context(), name)
	if err != nil {
		if logos.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "no logo for kring")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer body.Close()

	return c.Stream(http.StatusOK, contentType, body)
}
