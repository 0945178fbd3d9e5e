package compliance

import "github.com/procsafe/hazard-engine/pkg/hazop"

// RelevantClauses selects the clauses that apply to one entry across the
// requested standards. The result never contains two clauses with the same
// (standard, clause ID) pair, and only clauses belonging to a requested
// standard appear. Standards without a catalog contribute nothing.
//
// Selection rules:
//   - a clause with no minimum risk level is always a candidate;
//   - a risk-gated clause requires the entry's ranking to meet or exceed
//     the clause's level (entries with no ranking never qualify);
//   - a LOPA-gated clause additionally requires opts.HasLOPA.
//
// Raising an entry's risk level can only grow the selection, never shrink
// it.
func (e *Engine) RelevantClauses(entry *hazop.AnalysisEntry, standards []StandardID, opts Options) []StandardClause {
	var out []StandardClause
	seen := make(map[string]struct{})

	for _, std := range standards {
		for _, clause := range e.reg.Clauses(std) {
			if !clauseRelevant(clause, entry, opts) {
				continue
			}
			key := string(std) + "\x00" + clause.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, StandardClause{Standard: std, Clause: clause})
		}
	}
	return out
}

func clauseRelevant(clause Clause, entry *hazop.AnalysisEntry, opts Options) bool {
	if clause.RequiresLOPA && !opts.HasLOPA {
		return false
	}
	if clause.MinRiskLevel == "" {
		return true
	}
	if entry.Risk == nil {
		return false
	}
	return riskRank(entry.Risk.Level) >= riskRank(clause.MinRiskLevel)
}

func riskRank(level hazop.RiskLevel) int {
	switch level {
	case hazop.RiskLow:
		return 1
	case hazop.RiskMedium:
		return 2
	case hazop.RiskHigh:
		return 3
	default:
		return 0
	}
}
