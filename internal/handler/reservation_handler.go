package handler

import (
	"errors"
	"net/http"

	"github.com/entradalive/ticketing/internal/dto"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
	orderSvc       service.OrderService
	authSvc        service.AuthService
}

func NewReservationHandler(reservationSvc service.ReservationService, orderSvc service.OrderService, authSvc service.AuthService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc, orderSvc: orderSvc, authSvc: authSvc}
}

func (h *ReservationHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/reserve", h.Reserve, auth)
	g.POST("/orders/:id/confirm", h.Confirm, auth)
	g.GET("/orders", h.ListOrders, auth)
}

func (h *ReservationHandler) Reserve(c echo.Context) error {
	user, err := requireUser(c, h.authSvc)
	if err != nil {
		return err
	}

	var req dto.ReserveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.EventID == 0 || len(req.SeatIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id and seat_ids are required")
	}

	order, expiresAt, err := h.reservationSvc.Reserve(c.Request().Context(), user.ID, req.EventID, req.SeatIDs, req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrEventNotActive):
			return echo.NewHTTPError(http.StatusConflict, "Event is not available for booking")
		case errors.Is(err, service.ErrSeatsUnavailable):
			return echo.NewHTTPError(http.StatusConflict, "One or more seats are no longer available")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reserve seats")
		}
	}

	return c.JSON(http.StatusCreated, dto.ReserveResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Message:     "Seats reserved successfully",
		ExpiresAt:   expiresAt,
	})
}

func (h *ReservationHandler) Confirm(c echo.Context) error {
	user, err := requireUser(c, h.authSvc)
	if err != nil {
		return err
	}

	orderID, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.reservationSvc.Confirm(c.Request().Context(), user.ID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderNotPending):
			return echo.NewHTTPError(http.StatusConflict, "Order is not pending")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to confirm order")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order":   order,
		"message": "Order confirmed successfully",
	})
}

func (h *ReservationHandler) ListOrders(c echo.Context) error {
	user, err := requireUser(c, h.authSvc)
	if err != nil {
		return err
	}

	orders, err := h.orderSvc.ListUserOrders(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, dto.OrderListResponse{Orders: orders})
}
