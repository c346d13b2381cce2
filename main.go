package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/entradalive/ticketing/config"
	"github.com/entradalive/ticketing/internal/handler"
	"github.com/entradalive/ticketing/internal/middleware"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/entradalive/ticketing/internal/sweeper"
	"github.com/entradalive/ticketing/pkg/database"
	"github.com/entradalive/ticketing/pkg/rabbitmq"

	"github.com/entradalive/ticketing/internal/identity"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional; without it domain events are simply not published.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	if cfg.JWKSURL == "" {
		log.Fatal("JWKS_URL is required")
	}
	verifier, err := identity.NewJWKSVerifier(cfg.JWKSURL)
	if err != nil {
		log.Fatalf("failed to load JWKS: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	eventRepo := repository.NewEventRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	logRepo := repository.NewSecurityLogRepository(db)
	dashRepo := repository.NewDashboardRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, adminRepo, logRepo, cfg.AdminEmails)
	eventSvc := service.NewEventService(eventRepo, seatRepo, orderRepo, publisher)
	venueSvc := service.NewVenueService(venueRepo, logRepo, db)
	reservationSvc := service.NewReservationService(eventRepo, seatRepo, orderRepo, ticketRepo, publisher)
	orderSvc := service.NewOrderService(orderRepo, ticketRepo)
	ticketSvc := service.NewTicketService(ticketRepo, logRepo, publisher)
	tokenSvc := service.NewTokenService(tokenRepo, userRepo, logRepo)
	dashboardSvc := service.NewDashboardService(dashRepo)

	// Background reclaim of expired seat holds
	holdSweeper := sweeper.New(reservationSvc, logger)
	if err := holdSweeper.Start(); err != nil {
		log.Fatalf("failed to start hold sweeper: %v", err)
	}
	defer holdSweeper.Stop()

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.Auth(verifier)
	api := e.Group("/api/v1")
	handler.NewAuthHandler(authSvc, tokenSvc, cfg.IsDevelopment()).RegisterRoutes(api, auth)
	handler.NewEventHandler(eventSvc, authSvc).RegisterRoutes(api, auth)
	handler.NewVenueHandler(venueSvc, authSvc).RegisterRoutes(api, auth)
	handler.NewReservationHandler(reservationSvc, orderSvc, authSvc).RegisterRoutes(api, auth)
	handler.NewTicketHandler(ticketSvc, authSvc).RegisterRoutes(api, auth)
	handler.NewDashboardHandler(dashboardSvc, authSvc).RegisterRoutes(api, auth)

	logger.Info("ticketing service starting", "port", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
