package riskcategory

import (
	"log/slog"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/handler"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/metrics"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/service"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/store"
	"github.com/eksiir/risk-categories-microservice/internal/status"
)

// Service exposes the risk category operations.
type Service = service.Service

// Handler wires HTTP endpoints to the risk category service.
type Handler = handler.Handler

// NewService constructs the risk category service with required dependencies.
func NewService(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return service.New(st, logger, m)
}

// NewHandler constructs an HTTP handler for the risk category routes.
func NewHandler(s *Service, registry *status.Registry, logger *slog.Logger) *Handler {
	return handler.New(s, registry, logger)
}
