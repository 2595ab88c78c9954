package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /healthz — liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
