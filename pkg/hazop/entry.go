// Package hazop defines the HazOps study domain model: analysis entries,
// guide words, and risk rankings produced by node-by-node deviation review.
package hazop

import "fmt"

// GuideWord is a standardized deviation qualifier applied to a process parameter.
type GuideWord string

const (
	GuideNo        GuideWord = "no"
	GuideMore      GuideWord = "more"
	GuideLess      GuideWord = "less"
	GuideReverse   GuideWord = "reverse"
	GuideEarly     GuideWord = "early"
	GuideLate      GuideWord = "late"
	GuideOtherThan GuideWord = "other_than"
)

// GuideWords lists every recognized guide word.
var GuideWords = []GuideWord{
	GuideNo, GuideMore, GuideLess, GuideReverse, GuideEarly, GuideLate, GuideOtherThan,
}

// Valid reports whether g is a recognized guide word.
func (g GuideWord) Valid() bool {
	for _, gw := range GuideWords {
		if g == gw {
			return true
		}
	}
	return false
}

// AnalysisEntry is one row of a HazOps study: a single node/guide-word
// deviation with its causes, consequences, safeguards, and recommendations.
// Entries are supplied by the persistence layer and treated as read-only.
type AnalysisEntry struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysis_id"`
	NodeID     string    `json:"node_id"`
	GuideWord  GuideWord `json:"guide_word"`
	Parameter  string    `json:"parameter"`
	Deviation  string    `json:"deviation"`

	Causes          []string `json:"causes"`
	Consequences    []string `json:"consequences"`
	Safeguards      []string `json:"safeguards"`
	Recommendations []string `json:"recommendations"`

	Risk  *RiskRanking `json:"risk_ranking,omitempty"`
	Notes string       `json:"notes,omitempty"`
}

// Validate checks structural integrity of an entry before it enters the
// compliance engine. The engine itself assumes well-formed entries; this is
// the transport layer's gate.
func (e *AnalysisEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry missing id")
	}
	if e.NodeID == "" {
		return fmt.Errorf("entry %s: missing node id", e.ID)
	}
	if !e.GuideWord.Valid() {
		return fmt.Errorf("entry %s: unknown guide word %q", e.ID, e.GuideWord)
	}
	if e.Risk != nil {
		if err := e.Risk.Validate(); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// IsHighRisk reports whether the entry carries a high-risk ranking.
func (e *AnalysisEntry) IsHighRisk() bool {
	return e.Risk != nil && e.Risk.Level == RiskHigh
}

// HasSafeguards reports whether at least one safeguard is documented.
func (e *AnalysisEntry) HasSafeguards() bool { return len(e.Safeguards) > 0 }

// HasRecommendations reports whether at least one recommendation is documented.
func (e *AnalysisEntry) HasRecommendations() bool { return len(e.Recommendations) > 0 }
