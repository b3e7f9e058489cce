package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/vehicle-fleet-service/internal/config"
	"github.com/kjstillabower/vehicle-fleet-service/internal/fleet"
	httphandler "github.com/kjstillabower/vehicle-fleet-service/internal/http"
	"github.com/kjstillabower/vehicle-fleet-service/internal/lifecycle"
	"github.com/kjstillabower/vehicle-fleet-service/internal/observability"
	"github.com/kjstillabower/vehicle-fleet-service/internal/store"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	var fleetStore store.Store
	var memcacheCloser *store.MemcachedStore
	switch cfg.StoreBackend {
	case "memcached":
		mc, err := store.NewMemcachedStore(cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
		if err != nil {
			logger.Fatal("memcached store", zap.Error(err))
		}
		memcacheCloser = mc
		fleetStore = mc
		logger.Info("store backend: memcached", zap.String("addrs", cfg.MemcachedAddrs))
	default:
		fleetStore = store.NewInMemoryStore()
		logger.Info("store backend: in_memory")
	}

	fleetService := fleet.NewService(fleetStore)
	if len(cfg.SeedVehicles) > 0 {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := fleetService.Seed(seedCtx, cfg.SeedVehicles); err != nil {
			seedCancel()
			logger.Fatal("fleet seed", zap.Error(err))
		}
		seedCancel()
		logger.Info("fleet seeded", zap.Int("vehicles", len(cfg.SeedVehicles)))
	}

	var storePing func() error
	if memcacheCloser != nil {
		storePing = memcacheCloser.Ping
	}
	handler := httphandler.NewHandler(fleetService, logger, cfg.NameMaxLength, storePing)

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	router.HandleFunc("/demo", handler.GetDemo).Methods("GET")

	vehicleRouter := router.PathPrefix("/vehicles").Subrouter()
	vehicleRouter.Use(httphandler.RateLimitMiddleware(limiter))
	vehicleRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	vehicleRouter.HandleFunc("", handler.RegisterVehicle).Methods("POST")
	vehicleRouter.HandleFunc("", handler.ListVehicles).Methods("GET")
	vehicleRouter.HandleFunc("/{id}", handler.GetVehicle).Methods("GET")
	vehicleRouter.HandleFunc("/{id}/start", handler.StartEngine).Methods("POST")
	vehicleRouter.HandleFunc("/{id}/efficiency", handler.GetFuelEfficiency).Methods("GET")
	vehicleRouter.HandleFunc("/{id}/honk", handler.Honk).Methods("POST")
	vehicleRouter.HandleFunc("/{id}/wheelie", handler.DoWheelie).Methods("POST")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	observability.RecordShutdownInFlight(inFlight)
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}

	if memcacheCloser != nil {
		if err := memcacheCloser.Close(); err != nil {
			logger.Error("memcached close", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
