package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/adapters/httpapi"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/adapters/jhora"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/app"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	engine := jhora.NewClient(
		&http.Client{Timeout: cfg.EngineTimeout},
		cfg.EngineBaseURL,
		cfg.EngineToken,
		logger,
	)

	// The factor list is the engine's process-wide configuration; read it
	// once before serving.
	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.EngineTimeout)
	factors, err := engine.Factors(startupCtx)
	cancel()
	if err != nil {
		logger.Error("failed to read divisional chart factors", "error", err)
		os.Exit(1)
	}

	svc := app.NewHoroscopeService(engine, engine, factors, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Mobile clients call the API cross-origin.
	e.Use(middleware.CORS())
	e.Use(httpapi.RequestIDMiddleware())
	e.Use(httpapi.LoggingMiddleware(logger))

	handler := httpapi.NewHandler(svc, cfg.ComputeTimeout, cfg.AuthToken)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
