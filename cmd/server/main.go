// Command server runs the risk categories microservice. main wires
// high-level dependencies, mounts the HTTP router, and keeps the server
// lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eksiir/risk-categories-microservice/internal/platform/buildinfo"
	"github.com/eksiir/risk-categories-microservice/internal/platform/config"
	"github.com/eksiir/risk-categories-microservice/internal/platform/httpserver"
	"github.com/eksiir/risk-categories-microservice/internal/platform/logger"
	"github.com/eksiir/risk-categories-microservice/internal/platform/middleware"
	"github.com/eksiir/risk-categories-microservice/internal/platform/mongodb"
	"github.com/eksiir/risk-categories-microservice/internal/platform/secrets"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/metrics"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/store"
	"github.com/eksiir/risk-categories-microservice/internal/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)
	registry := status.New(buildinfo.Name, buildinfo.Version, buildinfo.Description)

	ctx := context.Background()
	st, client := newStore(ctx, cfg, registry, log)
	defer func() {
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
	}()

	svc := riskcategory.NewService(st, log, metrics.New())
	h := riskcategory.NewHandler(svc, registry, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RequestTime)
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server, router)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	started := fmt.Sprintf("Server started on port %d.", cfg.Server.Port)
	registry.Set(status.FieldAPI, started)
	log.Info(started)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// newStore attempts the one startup connection to the document store and
// picks the Store implementation for this process: Mongo when a client
// exists, the in-memory store for the test environment, and the
// always-failing store when the connection could not even be configured.
func newStore(ctx context.Context, cfg config.Config, registry *status.Registry, log *slog.Logger) (store.Store, *mongo.Client) {
	var provider secrets.Provider
	if cfg.Env == config.EnvProduction {
		if cfg.MockSecrets {
			provider = secrets.Static{Region: cfg.AWSRegion}
		} else {
			m, err := secrets.NewManager(ctx, cfg.AWSRegion)
			if err != nil {
				registry.Set(status.FieldMongoDB, "MongoDB connection failure: "+err.Error())
				log.Error("secrets manager init failed", "error", err)
				return store.Unavailable{}, nil
			}
			provider = m
		}
	}

	client, err := mongodb.Connect(ctx, cfg, provider, registry, log)
	switch {
	case errors.Is(err, mongodb.ErrSkipped):
		return store.NewMemory(), nil
	case err != nil:
		log.Error("mongodb connection failed", "error", err)
		return store.Unavailable{}, nil
	}
	return store.NewMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)), client
}
