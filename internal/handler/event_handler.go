package handler

import (
	"errors"
	"net/http"

	"github.com/entradalive/ticketing/internal/dto"
	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventSvc service.EventService
	authSvc  service.AuthService
}

func NewEventHandler(eventSvc service.EventService, authSvc service.AuthService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, authSvc: authSvc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/events", h.List)
	g.GET("/events/:id", h.Detail)
	g.POST("/admin/events", h.Create, auth)
	g.PUT("/admin/events/:id", h.Update, auth)
	g.DELETE("/admin/events/:id", h.Cancel, auth)
	g.POST("/admin/events/:id/sections", h.CreateSection, auth)
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventSvc.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch events")
	}
	return c.JSON(http.StatusOK, dto.EventListResponse{Events: events})
}

func (h *EventHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	detail, err := h.eventSvc.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event")
	}

	return c.JSON(http.StatusOK, dto.EventDetailResponse{Event: detail.Event, Sections: detail.Sections})
}

func (h *EventHandler) Create(c echo.Context) error {
	admin, err := requireAdmin(c, h.authSvc)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Title == "" || req.Date == "" || req.Time == "" || req.VenueName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title, date, time and venue_name are required")
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		VenueName:    req.VenueName,
		VenueAddress: req.VenueAddress,
		VenueCity:    req.VenueCity,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		CreatedBy:    admin.UserID,
	}
	if err := h.eventSvc.Create(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create event")
	}

	return c.JSON(http.StatusCreated, dto.EventMutationResponse{Event: event, Message: "Event created successfully"})
}

func (h *EventHandler) Update(c echo.Context) error {
	if _, err := requireAdmin(c, h.authSvc); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No fields to update")
	}

	event, err := h.eventSvc.Update(c.Request().Context(), id, fields)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update event")
	}

	return c.JSON(http.StatusOK, dto.EventMutationResponse{Event: event, Message: "Event updated successfully"})
}

// Cancel marks the event cancelled instead of deleting it; events with
// bought or pending orders cannot be removed at all.
func (h *EventHandler) Cancel(c echo.Context) error {
	if _, err := requireAdmin(c, h.authSvc); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.eventSvc.Cancel(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrEventHasOrders):
			return echo.NewHTTPError(http.StatusConflict, "Cannot delete event with active orders. Cancel the event instead.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to cancel event")
		}
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event cancelled successfully"})
}

func (h *EventHandler) CreateSection(c echo.Context) error {
	if _, err := requireAdmin(c, h.authSvc); err != nil {
		return err
	}

	eventID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Name == "" || req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and a positive price are required")
	}
	if req.Rows <= 0 || req.SeatsPerRow <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Rows and seats_per_row must be positive")
	}

	section := &models.Section{
		Name:   req.Name,
		Type:   models.SectionType(req.Type),
		Price:  req.Price,
		Color:  req.Color,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
	}
	if section.Type == "" {
		section.Type = models.SectionGeneral
	}

	created, seats, err := h.eventSvc.CreateSection(c.Request().Context(), eventID, section, req.Rows, req.SeatsPerRow)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create section")
	}

	return c.JSON(http.StatusCreated, dto.SectionCreatedResponse{Section: created, SeatsCreated: seats})
}

