package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"studio-api/core/cache"
	"studio-api/core/config"
	"studio-api/core/constants"
	"studio-api/core/database"
	"studio-api/core/logger"
	"studio-api/core/middleware"
	"studio-api/core/queue"
	"studio-api/modules/auth"
	"studio-api/modules/availability"
	"studio-api/modules/booking"
	"studio-api/modules/meeting"
	"studio-api/modules/notification"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires every module and serves until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return err
	}

	// The cache degrades to nil when redis is unreachable and reads
	// fall through to the database.
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	queueClient := queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	worker := queue.NewWorker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	mw := middleware.NewMiddleware()

	authSvc := auth.Init(e, &db, mw)
	availRepo := availability.Init(e, &db, c, authSvc, mw)
	coordinator := booking.InitCoordinator(&db, availRepo, c)
	notifier := notification.Init(e, &db, queueClient, worker, mw)
	meetingSvc := meeting.Init(e, &db, availRepo, coordinator, notifier, mw)
	booking.InitRoutes(e, meetingSvc)

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("Server:Worker:Start", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()
	logger.Info("Server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()

	worker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Error("Server:Queue:Close", err)
	}
	if err := c.Close(); err != nil {
		logger.Error("Server:Cache:Close", err)
	}
	return e.Shutdown(ctx)
}
