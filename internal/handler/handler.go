// Package handler exposes the HTTP surface. Handlers bind requests, call
// services and translate sentinel errors to HTTP status codes; they hold
// no business logic of their own.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/entradalive/ticketing/internal/middleware"
	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

// requireAdmin resolves the caller's admin record from the verified JWT
// subject. The admin_users table is the only authorization source; claims
// in the token are never trusted for role decisions.
func requireAdmin(c echo.Context, authSvc service.AuthService) (*models.AdminUser, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	admin, err := authSvc.RequireAdmin(c.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			return nil, echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Authorization check failed")
	}
	return admin, nil
}

// requireUser resolves the local user row for the verified JWT subject.
func requireUser(c echo.Context, authSvc service.AuthService) (*models.User, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	user, err := authSvc.UserBySubject(c.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not registered")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve user")
	}
	return user, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}
