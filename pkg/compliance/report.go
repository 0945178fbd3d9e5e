package compliance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// Report is the full audit artifact for one compliance assessment. Apart
// from ID, GeneratedAt, and the content hash derived from them, identical
// inputs produce identical reports.
type Report struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	AnalysisID string `json:"analysis_id,omitempty"`

	StandardsAssessed []StandardID      `json:"standards_assessed"`
	StandardSummaries []StandardSummary `json:"standard_summaries"`
	CheckResults      []CheckResult     `json:"check_results"`
	CriticalGaps      []string          `json:"critical_gaps"`

	OverallCompliancePercentage int `json:"overall_compliance_percentage"`

	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by_id"`

	// ContentHash is the SHA-256 of the report's RFC 8785 canonical JSON
	// (with the hash field itself empty), making stored reports
	// tamper-evident.
	ContentHash string `json:"content_hash,omitempty"`
}

// GenerateReport runs a full assessment and assembles the audit report.
// GeneratedBy is recorded verbatim; the engine does not validate it.
// Returns an error only for entry counts below the assessment minimum.
func (e *Engine) GenerateReport(projectID, analysisID string, entries []hazop.AnalysisEntry, standards []StandardID, generatedBy string, opts Options) (*Report, error) {
	if len(entries) < MinEntriesForAssessment {
		return nil, fmt.Errorf("cannot generate report: %s", ErrInsufficientEntries)
	}

	ctx := BuildContext(entries, opts)
	assessments := e.assess(entries, standards, opts)

	r := &Report{
		ID:                uuid.NewString(),
		ProjectID:         projectID,
		AnalysisID:        analysisID,
		StandardsAssessed: append([]StandardID(nil), standards...),
		CriticalGaps:      []string{},
		GeneratedAt:       time.Now().UTC(),
		GeneratedBy:       generatedBy,
	}
	for _, a := range assessments {
		r.StandardSummaries = append(r.StandardSummaries, a.summary)
		r.CheckResults = append(r.CheckResults, a.checks...)
		r.CriticalGaps = append(r.CriticalGaps, criticalGaps(a, ctx)...)
	}
	r.OverallCompliancePercentage = meanPercentage(r.StandardSummaries)

	hash, err := contentHash(r)
	if err != nil {
		return nil, fmt.Errorf("report content hash: %w", err)
	}
	r.ContentHash = hash
	return r, nil
}

// criticalGaps extracts the non-compliant clauses that matter most: those
// whose required documentation is absent from the entire analysis, and
// those left unaddressed on high-risk entries.
func criticalGaps(a standardAssessment, ctx Context) []string {
	var gaps []string
	nothingDocumented := ctx.EntriesWithSafeguards == 0 && ctx.EntriesWithRecommendations == 0

	for _, oc := range a.outcomes {
		if oc.best != StrengthNone {
			continue
		}
		switch {
		case oc.clause.RequiresEvidence && nothingDocumented:
			gaps = append(gaps, fmt.Sprintf(
				"%s %s (%s): required documentation absent across the analysis",
				a.standard, oc.clause.ID, oc.clause.Title))
		case oc.relevantToHighRisk:
			gaps = append(gaps, fmt.Sprintf(
				"%s %s (%s): unaddressed on a high-risk deviation",
				a.standard, oc.clause.ID, oc.clause.Title))
		}
	}
	return gaps
}

// contentHash canonicalizes the report (hash field excluded) per RFC 8785
// and returns its SHA-256.
func contentHash(r *Report) (string, error) {
	clone := *r
	clone.ContentHash = ""
	raw, err := json.Marshal(&clone)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
