package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// PostgresStore implements AnalysisStore on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open Postgres handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects and pings.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

const pgSelectEntries = `
	SELECT id, analysis_id, node_id, guide_word, parameter, deviation,
	       causes, consequences, safeguards, recommendations,
	       severity, likelihood, detectability, notes
	FROM analysis_entries
	WHERE analysis_id = $1
	ORDER BY node_id, id`

// EntriesForAnalysis loads every entry of one analysis.
func (s *PostgresStore) EntriesForAnalysis(ctx context.Context, analysisID string) ([]hazop.AnalysisEntry, error) {
	rows, err := s.db.QueryContext(ctx, pgSelectEntries, analysisID)
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
func (s *PostgresStore) SaveEntry(ctx context.Context, e *hazop.AnalysisEntry) error {
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
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			guide_word = EXCLUDED.guide_word,
			parameter = EXCLUDED.parameter,
			deviation = EXCLUDED.deviation,
			causes = EXCLUDED.causes,
			consequences = EXCLUDED.consequences,
			safeguards = EXCLUDED.safeguards,
			recommendations = EXCLUDED.recommendations,
			severity = EXCLUDED.severity,
			likelihood = EXCLUDED.likelihood,
			detectability = EXCLUDED.detectability,
			notes = EXCLUDED.notes`
	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.AnalysisID, e.NodeID, e.GuideWord, e.Parameter, e.Deviation,
		causes, consequences, safeguards, recommendations,
		severity, likelihood, detectability, e.Notes)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// SaveReport persists the full report body as JSON alongside indexable
// columns.
func (s *PostgresStore) SaveReport(ctx context.Context, r *compliance.Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	const query = `
		INSERT INTO compliance_reports
			(id, project_id, analysis_id, generated_at, generated_by, content_hash, body)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = s.db.ExecContext(ctx, query,
		r.ID, r.ProjectID, nullString(r.AnalysisID), r.GeneratedAt, r.GeneratedBy, r.ContentHash, body)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport fetches one report by ID.
func (s *PostgresStore) GetReport(ctx context.Context, id string) (*compliance.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM compliance_reports WHERE id = $1`, id)

	var body []byte
	if err := row.Scan(&body); err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return unmarshalReport(body)
}

// ListReports returns recent reports for a project, newest first.
func (s *PostgresStore) ListReports(ctx context.Context, projectID string, limit int) ([]*compliance.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM compliance_reports
		 WHERE project_id = $1
		 ORDER BY generated_at DESC
		 LIMIT $2`, projectID, limit)
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

// scanEntry reads one entry row, rebuilding the risk ranking from its
// factors so the score/level invariant holds regardless of what was stored.
func scanEntry(rows *sql.Rows) (*hazop.AnalysisEntry, error) {
	var (
		e                                             hazop.AnalysisEntry
		causes, consequences, safeguards, recommends  []byte
		severity, likelihood, detectability           sql.NullInt64
		notes                                         sql.NullString
	)
	err := rows.Scan(&e.ID, &e.AnalysisID, &e.NodeID, &e.GuideWord, &e.Parameter, &e.Deviation,
		&causes, &consequences, &safeguards, &recommends,
		&severity, &likelihood, &detectability, &notes)
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	for _, col := range []struct {
		raw []byte
		dst *[]string
	}{
		{causes, &e.Causes},
		{consequences, &e.Consequences},
		{safeguards, &e.Safeguards},
		{recommends, &e.Recommendations},
	} {
		*col.dst = []string{}
		if len(col.raw) > 0 {
			if err := json.Unmarshal(col.raw, col.dst); err != nil {
				return nil, fmt.Errorf("entry %s: decode list: %w", e.ID, err)
			}
		}
	}

	if severity.Valid && likelihood.Valid && detectability.Valid {
		risk, err := hazop.NewRiskRanking(int(severity.Int64), int(likelihood.Int64), int(detectability.Int64))
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		e.Risk = risk
	}
	e.Notes = notes.String
	return &e, nil
}

func marshalLists(e *hazop.AnalysisEntry) (causes, consequences, safeguards, recommendations []byte, err error) {
	for _, col := range []struct {
		src []string
		dst *[]byte
	}{
		{e.Causes, &causes},
		{e.Consequences, &consequences},
		{e.Safeguards, &safeguards},
		{e.Recommendations, &recommendations},
	} {
		vals := col.src
		if vals == nil {
			vals = []string{}
		}
		*col.dst, err = json.Marshal(vals)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal entry lists: %w", err)
		}
	}
	return causes, consequences, safeguards, recommendations, nil
}

func unmarshalReport(body []byte) (*compliance.Report, error) {
	var r compliance.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
