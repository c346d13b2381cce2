package handler

import (
	"net/http"

	"github.com/entradalive/ticketing/internal/dto"
	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	venueSvc service.VenueService
	authSvc  service.AuthService
}

func NewVenueHandler(venueSvc service.VenueService, authSvc service.AuthService) *VenueHandler {
	return &VenueHandler{venueSvc: venueSvc, authSvc: authSvc}
}

func (h *VenueHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/venues", h.List)
	g.POST("/admin/venues", h.Create, auth)
}

func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.venueSvc.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch venues")
	}
	return c.JSON(http.StatusOK, dto.VenueListResponse{Venues: venues})
}

func (h *VenueHandler) Create(c echo.Context) error {
	admin, err := requireAdmin(c, h.authSvc)
	if err != nil {
		return err
	}

	var req dto.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, address and city are required")
	}
	if req.Capacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Capacity must be positive")
	}

	venue := &models.Venue{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Capacity:    req.Capacity,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Amenities:   req.Amenities,
		ContactInfo: req.ContactInfo,
	}
	if err := h.venueSvc.Create(c.Request().Context(), venue, admin.UserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create venue")
	}

	return c.JSON(http.StatusCreated, dto.VenueMutationResponse{Venue: venue, Message: "Venue created successfully"})
}
