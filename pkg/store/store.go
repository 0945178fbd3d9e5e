// Package store persists HazOps analysis entries and compliance reports.
// Two implementations exist: Postgres for the full deployment and SQLite
// for lite/standalone mode. The compliance engine never touches storage
// itself; callers load entries here and hand them to the engine.
package store

import (
	"context"
	"errors"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// AnalysisStore is the persistence contract consumed by the API layer.
type AnalysisStore interface {
	// EntriesForAnalysis returns all entries of one analysis, ordered by
	// node then entry ID.
	EntriesForAnalysis(ctx context.Context, analysisID string) ([]hazop.AnalysisEntry, error)

	// SaveEntry upserts a single analysis entry.
	SaveEntry(ctx context.Context, entry *hazop.AnalysisEntry) error

	// SaveReport persists a generated compliance report.
	SaveReport(ctx context.Context, report *compliance.Report) error

	// GetReport fetches a report by ID. Returns ErrNotFound when absent.
	GetReport(ctx context.Context, id string) (*compliance.Report, error)

	// ListReports returns the most recent reports for a project, newest
	// first, at most limit rows.
	ListReports(ctx context.Context, projectID string, limit int) ([]*compliance.Report, error)

	// Close releases the underlying database handle.
	Close() error
}
