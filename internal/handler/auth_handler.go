package handler

import (
	"errors"
	"net/http"

	"github.com/entradalive/ticketing/internal/dto"
	"github.com/entradalive/ticketing/internal/middleware"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authSvc  service.AuthService
	tokenSvc service.TokenService
	// devMode exposes issued tokens in responses for manual testing.
	devMode bool
}

func NewAuthHandler(authSvc service.AuthService, tokenSvc service.TokenService, devMode bool) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, tokenSvc: tokenSvc, devMode: devMode}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/auth/callback", h.SyncCallback, auth)
	g.POST("/auth/resend-verification", h.ResendVerification)
	g.POST("/auth/verify-email", h.VerifyEmail)
	g.POST("/auth/reset-password", h.RequestPasswordReset)
	g.POST("/auth/reset-password/confirm", h.ConfirmPasswordReset)
}

func (h *AuthHandler) SyncCallback(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	result, err := h.authSvc.Sync(c.Request().Context(), claims, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrNoIdentity) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed")
	}

	return c.JSON(http.StatusOK, dto.ToAuthSyncResponse(result))
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req dto.EmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	token, err := h.tokenSvc.ResendVerification(c.Request().Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrAlreadyVerified):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already verified")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.MessageResponse{Message: "Verification email sent successfully"}
	if h.devMode {
		resp.Token = token
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Token is required")
	}

	email, err := h.tokenSvc.VerifyEmail(c.Request().Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired token")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Email verified successfully",
		"email":   email,
	})
}

// RequestPasswordReset responds identically whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req dto.EmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	token, err := h.tokenSvc.RequestPasswordReset(c.Request().Context(), req.Email, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.MessageResponse{Message: "If the email exists, a password reset link has been sent"}
	if h.devMode && token != "" {
		resp.Token = token
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Token is required")
	}

	err := h.tokenSvc.ConfirmPasswordReset(c.Request().Context(), req.Token, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired token")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset confirmed"})
}
