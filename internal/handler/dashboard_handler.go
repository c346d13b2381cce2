package handler

import (
	"net/http"

	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
	authSvc      service.AuthService
}

func NewDashboardHandler(dashboardSvc service.DashboardService, authSvc service.AuthService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, authSvc: authSvc}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/admin/dashboard", h.Stats, auth)
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	if _, err := requireAdmin(c, h.authSvc); err != nil {
		return err
	}

	stats, err := h.dashboardSvc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard stats")
	}

	return c.JSON(http.StatusOK, stats)
}
