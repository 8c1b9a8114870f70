package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/config"
	dbpkg "github.com/BruksfildServices01/visit-tracker/internal/db"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
	"github.com/BruksfildServices01/visit-tracker/internal/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.NewJSON(slog.LevelInfo)
	db := dbpkg.NewDB(cfg)

	broker, err := realtime.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to start realtime broker: %v", err)
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logger)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		DB:               db,
		Broker:           broker,
		Audit:            dispatcher,
		Tokens:           auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Logger:           logger,
		CheckEmailDomain: cfg.CheckEmailDomain,
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	go func() {
		logger.Info(ctx, "server running", "addr", cfg.Addr(), "realtime", cfg.RealtimeDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	// live streams hold their requests open until the broker ends them
	_ = broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
	}
	dispatcher.Close()
}
