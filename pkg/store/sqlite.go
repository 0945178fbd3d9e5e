package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// SQLiteStore implements AnalysisStore on SQLite for lite/standalone mode.
// The schema is created on open.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the
// schema. Use ":memory:" for tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS analysis_entries (
		id TEXT PRIMARY KEY,
		analysis_id TEXT NOT NULL,
		node_id TEXT NOT NULL,
		guide_word TEXT NOT NULL,
		parameter TEXT NOT NULL DEFAULT '',
		deviation TEXT NOT NULL DEFAULT '',
		causes JSON NOT NULL DEFAULT '[]',
		consequences JSON NOT NULL DEFAULT '[]',
		safeguards JSON NOT NULL DEFAULT '[]',
		recommendations JSON NOT NULL DEFAULT '[]',
		severity INTEGER,
		likelihood INTEGER,
		detectability INTEGER,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_entries_analysis ON analysis_entries(analysis_id);

	CREATE TABLE IF NOT EXISTS compliance_reports (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		analysis_id TEXT,
		generated_at DATETIME NOT NULL,
		generated_by TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		body JSON NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_project ON compliance_reports(project_id, generated_at);`
	_, err := s.db.ExecContext(context.Background(), schema)
	if err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

// EntriesForAnalysis loads every entry of one analysis.
func (s *SQLiteStore) EntriesForAnalysis(ctx context.Context, analysisID string) ([]hazop.AnalysisEntry, error) {
	const query = `
		SELECT id, analysis_id, node_id, guide_word, parameter, deviation,
		       causes, consequences, safeguards, recommendations,
		       severity, likelihood, detectability, notes
		FROM analysis_entries
		WHERE analysis_id = ?
		ORDER BY node_id, id`
	rows, err := s.db.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []hazop.AnalysisEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// SaveEntry upserts one entry.
func (s *SQLiteStore) SaveEntry(ctx context.Context, e *hazop.AnalysisEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	causes, consequences, safeguards, recommendations, err := marshalLists(e)
	if err != nil {
		return err
	}

	var severity, likelihood, detectability sql.NullInt64
	if e.Risk != nil {
		severity = sql.NullInt64{Int64: int64(e.Risk.Severity), Valid: true}
		likelihood = sql.NullInt64{Int64: int64(e.Risk.Likelihood), Valid: true}
		detectability = sql.NullInt64{Int64: int64(e.Risk.Detectability), Valid: true}
	}

	const query = `
		INSERT INTO analysis_entries
			(id, analysis_id, node_id, guide_word, parameter, deviation,
			 causes, consequences, safeguards, recommendations,
			 severity, likelihood, detectability, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			guide_word = excluded.guide_word,
			parameter = excluded.parameter,
			deviation = excluded.deviation,
			causes = excluded.causes,
			consequences = excluded.consequences,
			safeguards = excluded.safeguards,
			recommendations = excluded.recommendations,
			severity = excluded.severity,
			likelihood = excluded.likelihood,
			detectability = excluded.detectability,
			notes = excluded.notes`
	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.AnalysisID, e.NodeID, e.GuideWord, e.Parameter, e.Deviation,
		causes, consequences, safeguards, recommendations,
		severity, likelihood, detectability, e.Notes)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// SaveReport persists a generated report.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *compliance.Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	const query = `
		INSERT INTO compliance_reports
			(id, project_id, analysis_id, generated_at, generated_by, content_hash, body)
		VALUES (?,?,?,?,?,?,?)`
	_, err = s.db.ExecContext(ctx, query,
		r.ID, r.ProjectID, nullString(r.AnalysisID), r.GeneratedAt, r.GeneratedBy, r.ContentHash, body)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport fetches one report by ID.
func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*compliance.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM compliance_reports WHERE id = ?`, id)

	var body []byte
	if err := row.Scan(&body); err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return unmarshalReport(body)
}

// ListReports returns recent reports for a project, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, projectID string, limit int) ([]*compliance.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM compliance_reports
		 WHERE project_id = ?
		 ORDER BY generated_at DESC
		 LIMIT ?`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*compliance.Report
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r, err := unmarshalReport(body)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
