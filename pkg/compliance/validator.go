package compliance

import (
	"math"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// ErrInsufficientEntries is the errors-array message for analyses too small
// to assess. It is a value in ValidationResult.Errors, never a Go error.
const ErrInsufficientEntries = "Insufficient analysis entries for compliance assessment."

// CheckResult records a single entry-against-clause evaluation for audit
// traceability.
type CheckResult struct {
	Standard   StandardID       `json:"standard_id"`
	EntryID    string           `json:"entry_id"`
	Evaluation ClauseEvaluation `json:"evaluation"`
}

// clauseOutcome accumulates the best addressal seen for one clause across
// all entries of the analysis.
type clauseOutcome struct {
	clause             Clause
	best               Strength
	relevantToHighRisk bool
}

// standardAssessment is the full evaluation detail for one standard.
type standardAssessment struct {
	standard StandardID
	summary  StandardSummary
	outcomes []clauseOutcome
	checks   []CheckResult
}

// ValidateCompliance assesses entries against the requested standards.
//
// Fewer than MinEntriesForAssessment entries is the one hard stop: the
// result carries success=false and an explanatory error, and nothing is
// evaluated. Otherwise success is true no matter how poor compliance is.
func (e *Engine) ValidateCompliance(entries []hazop.AnalysisEntry, standards []StandardID, opts Options) ValidationResult {
	if len(entries) < MinEntriesForAssessment {
		return ValidationResult{
			Success:       false,
			OverallStatus: StatusNotAssessed,
			Summaries:     []StandardSummary{},
			Errors:        []string{ErrInsufficientEntries},
		}
	}

	assessments := e.assess(entries, standards, opts)
	summaries := make([]StandardSummary, 0, len(assessments))
	for _, a := range assessments {
		summaries = append(summaries, a.summary)
	}

	return ValidationResult{
		Success:       true,
		OverallStatus: overallStatus(summaries),
		Summaries:     summaries,
	}
}

// assess runs the full entry-by-clause evaluation for every requested
// standard. Clause order follows the catalog and entry order follows the
// input, so identical inputs yield identical output.
func (e *Engine) assess(entries []hazop.AnalysisEntry, standards []StandardID, opts Options) []standardAssessment {
	out := make([]standardAssessment, 0, len(standards))
	for _, std := range standards {
		out = append(out, e.assessStandard(std, entries, opts))
	}
	return out
}

func (e *Engine) assessStandard(std StandardID, entries []hazop.AnalysisEntry, opts Options) standardAssessment {
	a := standardAssessment{standard: std}

	index := make(map[string]int) // clause ID → position in a.outcomes
	for i := range entries {
		entry := &entries[i]
		for _, sc := range e.RelevantClauses(entry, []StandardID{std}, opts) {
			eval := EvaluateClause(entry, sc.Clause)
			a.checks = append(a.checks, CheckResult{
				Standard:   std,
				EntryID:    entry.ID,
				Evaluation: eval,
			})

			pos, ok := index[sc.Clause.ID]
			if !ok {
				pos = len(a.outcomes)
				index[sc.Clause.ID] = pos
				a.outcomes = append(a.outcomes, clauseOutcome{
					clause: sc.Clause,
					best:   StrengthNone,
				})
			}
			oc := &a.outcomes[pos]
			if strengthRank(eval.Strength) > strengthRank(oc.best) {
				oc.best = eval.Strength
			}
			if entry.IsHighRisk() {
				oc.relevantToHighRisk = true
			}
		}
	}

	a.summary = summarize(std, a.outcomes)
	return a
}

// summarize tallies clause outcomes into a per-standard summary.
//
// A clause is compliant when at least one entry addressed it with a keyword
// match, partially compliant when it was only ever addressed through the
// weak requires-evidence path, and non-compliant otherwise. A standard with
// no applicable clauses is trivially satisfied.
func summarize(std StandardID, outcomes []clauseOutcome) StandardSummary {
	s := StandardSummary{Standard: std, TotalClauses: len(outcomes)}
	for _, oc := range outcomes {
		switch oc.best {
		case StrengthStrong:
			s.CompliantCount++
		case StrengthWeak:
			s.PartiallyCompliantCount++
		default:
			s.NonCompliantCount++
		}
	}

	if s.TotalClauses == 0 {
		s.CompliancePercentage = 100
	} else {
		s.CompliancePercentage = int(math.Round(
			100 * float64(s.CompliantCount) / float64(s.TotalClauses)))
	}
	s.Status = statusForPercentage(s.CompliancePercentage)
	return s
}

// statusForPercentage maps a compliance percentage onto a status band.
// Exactly 90 is compliant; exactly 50 is partially compliant.
func statusForPercentage(pct int) Status {
	switch {
	case pct >= CompliantThreshold:
		return StatusCompliant
	case pct >= PartialThreshold:
		return StatusPartiallyCompliant
	default:
		return StatusNonCompliant
	}
}

// overallStatus derives the cross-standard status from the unweighted mean
// percentage.
func overallStatus(summaries []StandardSummary) Status {
	if len(summaries) == 0 {
		return StatusNotAssessed
	}
	return statusForPercentage(meanPercentage(summaries))
}

// meanPercentage is the unweighted arithmetic mean of the per-standard
// compliance percentages, rounded to the nearest integer.
func meanPercentage(summaries []StandardSummary) int {
	if len(summaries) == 0 {
		return 0
	}
	sum := 0
	for _, s := range summaries {
		sum += s.CompliancePercentage
	}
	return int(math.Round(float64(sum) / float64(len(summaries))))
}

func strengthRank(s Strength) int {
	switch s {
	case StrengthStrong:
		return 2
	case StrengthWeak:
		return 1
	default:
		return 0
	}
}
