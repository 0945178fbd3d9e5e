package compliance

import (
	"fmt"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// EvaluateClause decides whether one entry addresses one clause.
//
// A keyword hit in any of the entry's causes, consequences, safeguards,
// recommendations, or deviation terms is a strong addressal. Failing that,
// a requires-evidence clause is weakly addressed when the entry documents
// any safeguards or recommendations. The returned evidence always explains
// the verdict, including negative ones.
//
// Same entry and clause always produce the same result.
func EvaluateClause(entry *hazop.AnalysisEntry, clause Clause) ClauseEvaluation {
	ks := ExtractKeywords([]hazop.AnalysisEntry{*entry})

	fields := []struct {
		name string
		set  TermSet
	}{
		{"causes", ks.Causes},
		{"consequences", ks.Consequences},
		{"safeguards", ks.Safeguards},
		{"recommendations", ks.Recommendations},
		{"deviation", ks.Deviations},
	}

	var evidence []string
	for _, kw := range clause.Keywords {
		folded := folder.String(kw)
		for _, f := range fields {
			if f.set.ContainsSubstring(folded) {
				evidence = append(evidence,
					fmt.Sprintf("matched keyword %q in %s", kw, f.name))
			}
		}
	}
	if len(evidence) > 0 {
		return ClauseEvaluation{
			Clause:    clause,
			Addresses: true,
			Strength:  StrengthStrong,
			Evidence:  evidence,
		}
	}

	if clause.RequiresEvidence && (entry.HasSafeguards() || entry.HasRecommendations()) {
		return ClauseEvaluation{
			Clause:    clause,
			Addresses: true,
			Strength:  StrengthWeak,
			Evidence: []string{fmt.Sprintf(
				"documentation present (%d safeguards, %d recommendations) satisfies: %s",
				len(entry.Safeguards), len(entry.Recommendations), clause.Title)},
		}
	}

	return ClauseEvaluation{
		Clause:    clause,
		Addresses: false,
		Strength:  StrengthNone,
		Evidence:  []string{"no matching evidence found for: " + clause.Title},
	}
}
