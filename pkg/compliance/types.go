package compliance

import (
	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// StandardID identifies a regulatory standard with a clause catalog.
type StandardID string

const (
	StandardIEC61511 StandardID = "IEC_61511"
	StandardISO31000 StandardID = "ISO_31000"
	StandardOSHAPSM  StandardID = "OSHA_PSM"
)

// MandatoryStandards are assessed when a caller does not name any.
var MandatoryStandards = []StandardID{StandardIEC61511, StandardISO31000, StandardOSHAPSM}

// Status classifies an assessment outcome, per standard or overall.
type Status string

const (
	StatusCompliant          Status = "compliant"
	StatusPartiallyCompliant Status = "partially_compliant"
	StatusNonCompliant       Status = "non_compliant"
	StatusNotAssessed        Status = "not_assessed"
)

// Assessment thresholds. Percentages at or above CompliantThreshold are
// compliant, at or above PartialThreshold partially compliant.
const (
	MinEntriesForAssessment = 1
	CompliantThreshold      = 90
	PartialThreshold        = 50
)

// Clause is one atomic regulatory requirement from a standard's catalog.
type Clause struct {
	ID       string     `json:"id"`
	Standard StandardID `json:"standard_id"`
	Title    string     `json:"title"`

	// Keywords are matched against entry text to detect addressal.
	Keywords []string `json:"keywords"`

	// RequiresEvidence marks generic "must document X" clauses that are
	// satisfied by documented safeguards or recommendations even without
	// a keyword hit.
	RequiresEvidence bool `json:"requires_evidence"`

	// MinRiskLevel gates relevance on the entry's risk band. Empty means
	// the clause applies to every entry.
	MinRiskLevel hazop.RiskLevel `json:"min_risk_level,omitempty"`

	// RequiresLOPA gates relevance on the analysis using Layers of
	// Protection Analysis.
	RequiresLOPA bool `json:"requires_lopa"`
}

// StandardClause pairs a clause with the standard it was selected under.
type StandardClause struct {
	Standard StandardID `json:"standard_id"`
	Clause   Clause     `json:"clause"`
}

// Options carries caller-supplied evaluation context.
type Options struct {
	// HasLOPA indicates the analysis uses Layers of Protection Analysis.
	// The engine never infers this from entries.
	HasLOPA bool
}

// Strength grades how a clause was addressed.
type Strength string

const (
	// StrengthStrong: a clause keyword matched entry text.
	StrengthStrong Strength = "strong"
	// StrengthWeak: no keyword hit, but documented safeguards or
	// recommendations satisfied a requires-evidence clause.
	StrengthWeak Strength = "weak"
	// StrengthNone: the clause was not addressed.
	StrengthNone Strength = "none"
)

// ClauseEvaluation is the addressal verdict for one entry against one
// clause. Evidence always holds at least one explanatory string.
type ClauseEvaluation struct {
	Clause    Clause   `json:"clause"`
	Addresses bool     `json:"addresses"`
	Strength  Strength `json:"strength"`
	Evidence  []string `json:"evidence"`
}

// StandardSummary tallies clause outcomes for one standard.
type StandardSummary struct {
	Standard                StandardID `json:"standard_id"`
	TotalClauses            int        `json:"total_clauses"`
	CompliantCount          int        `json:"compliant_count"`
	PartiallyCompliantCount int        `json:"partially_compliant_count"`
	NonCompliantCount       int        `json:"non_compliant_count"`
	CompliancePercentage    int        `json:"compliance_percentage"`
	Status                  Status     `json:"status"`
}

// ValidationResult is the outcome of assessing entries against standards.
// Success reflects whether assessment could run at all, not whether it
// passed.
type ValidationResult struct {
	Success       bool              `json:"success"`
	OverallStatus Status            `json:"overall_status"`
	Summaries     []StandardSummary `json:"summaries"`
	Errors        []string          `json:"errors,omitempty"`
}
