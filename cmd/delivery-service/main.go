package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/orderflow/delivery-system/delivery-service/config"
	"github.com/orderflow/delivery-system/delivery-service/handlers"
	deliverytelemetry "github.com/orderflow/delivery-system/delivery-service/telemetry"
	"github.com/orderflow/delivery-system/shared/events"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	deps, err := config.BuildDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Logger.WithError(err).Error("error closing dependencies")
		}
	}()

	logger := deps.Logger
	logger.WithField("env", cfg.Env).Infof("starting %s on port %s", cfg.ServiceName, cfg.Port)

	// A subscriber failure here is connection-level: the process exits and
	// the orchestrator restarts it, at which point unacked messages are
	// redelivered.
	if err := deps.DeliverySubscriber.Subscribe(ctx, events.DeliveryRequestedEvent, deps.DeliveryEventHandlers); err != nil {
		logger.WithError(err).Fatal("failed to start delivery subscriber")
	}
	if err := deps.RollbackSubscriber.Subscribe(ctx, events.RollbackRequestedEvent, deps.RollbackEventHandlers); err != nil {
		logger.WithError(err).Fatal("failed to start rollback subscriber")
	}

	router := setupRouter(deps)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down %s", cfg.ServiceName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Infof("%s stopped", cfg.ServiceName)
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	if deps.Telemetry != nil {
		r.Use(deliverytelemetry.Middleware(deps.Telemetry))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", handlers.NewMetricsHandler())

	deps.DeliveryHandlers.RegisterRoutes(r)

	return r
}
