package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/database"
	"meeting-optimizer-api/core/logger"
	coreMiddleware "meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth"
	"meeting-optimizer-api/modules/availability"
	"meeting-optimizer-api/modules/calendar"
	"meeting-optimizer-api/modules/directory"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application together and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logger.Level, cfg.Logger.Format)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer c.Close()

	mw, err := coreMiddleware.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("init auth middleware: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth.Init(e, c, mw)
	directory.Init(e, db, c, mw)
	calendar.Init(e, c, mw)
	availability.Init(e, db, c, mw)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server:Starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:StartFailed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:ShuttingDown")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
