package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/david5010/AetherGrid/internal/config"
	"github.com/david5010/AetherGrid/internal/grid"
	"github.com/david5010/AetherGrid/internal/providers/openmeteo"
	"github.com/david5010/AetherGrid/internal/timezone"
	"github.com/david5010/AetherGrid/internal/weather"
	"github.com/gin-gonic/gin"

	_ "github.com/david5010/AetherGrid/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	logger         *slog.Logger
	weatherService weather.Service
	gridRegistry   *grid.Registry
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	meteoClient := openmeteo.NewForecastClientWithHTTPClient(
		&http.Client{Timeout: cfg.Meteo.Timeout},
		cfg.Meteo.BaseURL,
		cfg.MeteoParams(),
		logger,
	)

	var tzSvc timezone.Service
	if cfg.Meteo.ResolveTimezone {
		svc, err := timezone.NewService()
		if err != nil {
			return nil, fmt.Errorf("failed to create timezone service: %w", err)
		}
		tzSvc = svc
	}

	registry, err := grid.NewRegistryFromEndpoints(cfg.Grid.Operators, &http.Client{Timeout: cfg.Grid.Timeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid registry: %w", err)
	}

	weatherSvc := weather.NewWeatherService(meteoClient, tzSvc, logger)

	logger.Info("application initialized",
		"meteoBaseURL", cfg.Meteo.BaseURL,
		"gridOperators", registry.Names(),
	)

	return NewAppWithServices(cfg.Server.GinMode, weatherSvc, registry, logger), nil
}

// NewAppWithServices wires the router around already constructed services
func NewAppWithServices(ginMode string, weatherSvc weather.Service, registry *grid.Registry, logger *slog.Logger) *App {
	// Set Gin mode from configuration
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger))

	app := &App{
		router:         router,
		logger:         logger,
		weatherService: weatherSvc,
		gridRegistry:   registry,
	}

	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
