package handler

import (
	"errors"
	"net/http"

	"github.com/entradalive/ticketing/internal/dto"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	ticketSvc service.TicketService
	authSvc   service.AuthService
}

func NewTicketHandler(ticketSvc service.TicketService, authSvc service.AuthService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc, authSvc: authSvc}
}

func (h *TicketHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/tickets/verify", h.Verify, auth)
}

// Verify resolves and consumes a scan code at the door. An unknown code
// returns 404; every known code returns 200 with the scan verdict so the
// scanner UI can show a reason even when entry is denied.
func (h *TicketHandler) Verify(c echo.Context) error {
	if _, err := requireAdmin(c, h.authSvc); err != nil {
		return err
	}

	var req dto.VerifyScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.QRCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "qr_code is required")
	}

	result, err := h.ticketSvc.VerifyScan(c.Request().Context(), req.QRCode)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Ticket not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify ticket")
	}

	return c.JSON(http.StatusOK, dto.ToScanResponse(result))
}
