package handler

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes_VersionedPrefix(t *testing.T) {
	e := echo.New()
	g := e.Group("/api/v1")
	auth := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	NewAuthHandler(nil, nil, false).RegisterRoutes(g, auth)
	NewEventHandler(nil, nil).RegisterRoutes(g, auth)
	NewVenueHandler(nil, nil).RegisterRoutes(g, auth)
	NewReservationHandler(nil, nil, nil).RegisterRoutes(g, auth)
	NewTicketHandler(nil, nil).RegisterRoutes(g, auth)
	NewDashboardHandler(nil, nil).RegisterRoutes(g, auth)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/callback",
		"POST /api/v1/auth/resend-verification",
		"POST /api/v1/auth/verify-email",
		"POST /api/v1/auth/reset-password",
		"POST /api/v1/auth/reset-password/confirm",
		"GET /api/v1/events",
		"GET /api/v1/events/:id",
		"GET /api/v1/venues",
		"POST /api/v1/reserve",
		"POST /api/v1/orders/:id/confirm",
		"GET /api/v1/orders",
		"POST /api/v1/admin/events",
		"PUT /api/v1/admin/events/:id",
		"DELETE /api/v1/admin/events/:id",
		"POST /api/v1/admin/events/:id/sections",
		"POST /api/v1/admin/venues",
		"GET /api/v1/admin/dashboard",
		"POST /api/v1/tickets/verify",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
