package api

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/observability"
	"github.com/procsafe/hazard-engine/pkg/store"
)

// Service binds the compliance engine to its HTTP surface: entry storage,
// the quick-status cache, logging, and telemetry. Store, Cache, and Obs
// may be nil; the handlers degrade to stateless operation.
type Service struct {
	Engine *compliance.Engine
	Store  store.AnalysisStore
	Cache  *QuickStatusCache
	Logger *slog.Logger
	Obs    *observability.Provider
}

// NewService wires a service. A nil engine gets the built-in catalogs.
func NewService(engine *compliance.Engine, st store.AnalysisStore, cache *QuickStatusCache, logger *slog.Logger) *Service {
	if engine == nil {
		engine = compliance.NewEngine(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Engine: engine,
		Store:  st,
		Cache:  cache,
		Logger: logger,
	}
}

// track opens an assessment span when telemetry is configured.
func (s *Service) track(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	if s.Obs == nil {
		return ctx, func(error) {}
	}
	return s.Obs.TrackAssessment(ctx, operation, attrs...)
}
