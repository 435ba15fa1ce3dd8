// Package mongodb establishes the document store connection and reflects
// the attempt's outcome into the readiness registry. Connection failures
// never crash the process; they leave the service not-ready.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eksiir/risk-categories-microservice/internal/platform/config"
	"github.com/eksiir/risk-categories-microservice/internal/platform/secrets"
	"github.com/eksiir/risk-categories-microservice/internal/status"
)

// ErrSkipped is returned when the environment runs without a store
// connection (tests use the in-memory store).
var ErrSkipped = errors.New("mongodb connection skipped")

// Connect resolves the connection URI for the deployment environment,
// attempts one connection, and records the outcome in the registry. The
// attempt happens once at process start; there is no automatic retry beyond
// what the driver does internally.
func Connect(ctx context.Context, cfg config.Config, provider secrets.Provider, reg *status.Registry, logger *slog.Logger) (*mongo.Client, error) {
	uri, err := connectURI(ctx, cfg, provider, reg)
	if err != nil {
		reg.Set(status.FieldMongoDB, "MongoDB connection failure: "+err.Error())
		return nil, err
	}
	if uri == "" {
		return nil, ErrSkipped
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		reg.Set(status.FieldMongoDB, "MongoDB connection failure: "+err.Error())
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		// The client stays usable; the driver reconnects transparently once
		// the server is reachable. The registry keeps the service not-ready.
		reg.Set(status.FieldMongoDB, "MongoDB connection failure: "+err.Error())
		logger.Error("mongodb ping failed", "error", err)
		return client, nil
	}

	reg.SetWithCode(status.FieldMongoDB, "Successfully connected to MongoDB.", http.StatusOK)
	logger.Info("connected to mongodb", "database", cfg.Mongo.Database)
	return client, nil
}

// connectURI resolves the connection string per deployment environment:
// test runs without a connection, production builds the URI from the
// region-scoped secret, everything else uses the configured local default.
func connectURI(ctx context.Context, cfg config.Config, provider secrets.Provider, reg *status.Registry) (string, error) {
	switch cfg.Env {
	case config.EnvTest:
		return "", nil
	case config.EnvProduction:
		if cfg.AWSRegion == "" {
			return "", errors.New("AWS_REGION shell environment variable is not defined.")
		}
		reg.Set(status.FieldAWSRegion, cfg.AWSRegion)

		secret, err := provider.DBSecret(ctx)
		if err != nil {
			return "", fmt.Errorf("resolve database secret: %w", err)
		}
		if !secret.Complete() {
			return "", errors.New("Failed to construct the MongoDB connection URI.")
		}
		return secret.URI(), nil
	default:
		return cfg.Mongo.URI, nil
	}
}
