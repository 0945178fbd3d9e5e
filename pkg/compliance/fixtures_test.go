package compliance

import (
	"testing"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// fullEntry is a well-documented, risk-ranked deviation used by the
// end-to-end tests.
func fullEntry(t *testing.T, id, nodeID string, severity, likelihood, detectability int) hazop.AnalysisEntry {
	t.Helper()
	risk, err := hazop.NewRiskRanking(severity, likelihood, detectability)
	if err != nil {
		t.Fatalf("risk ranking: %v", err)
	}
	return hazop.AnalysisEntry{
		ID:         id,
		AnalysisID: "an-1",
		NodeID:     nodeID,
		GuideWord:  hazop.GuideMore,
		Parameter:  "pressure",
		Deviation:  "more pressure in separator vessel",
		Causes: []string{
			"control valve failure leaves inlet open",
			"blocked outlet during maintenance",
		},
		Consequences: []string{
			"overpressure leading to loss of containment and toxic release",
		},
		Safeguards: []string{
			"pressure relief valve PSV-101",
			"high pressure alarm with operator response procedure",
		},
		Recommendations: []string{
			"verify relief valve sizing against blocked outlet case",
			"add independent high-pressure trip with SIL 2 safety instrumented function",
		},
		Risk: risk,
	}
}

// bareEntry has no documentation and no risk ranking.
func bareEntry(id, nodeID string) hazop.AnalysisEntry {
	return hazop.AnalysisEntry{
		ID:              id,
		AnalysisID:      "an-1",
		NodeID:          nodeID,
		GuideWord:       hazop.GuideNo,
		Parameter:       "flow",
		Deviation:       "no flow",
		Causes:          []string{},
		Consequences:    []string{},
		Safeguards:      []string{},
		Recommendations: []string{},
	}
}

// withRisk returns a copy of e carrying the given ranking.
func withRisk(t *testing.T, e hazop.AnalysisEntry, severity, likelihood, detectability int) hazop.AnalysisEntry {
	t.Helper()
	risk, err := hazop.NewRiskRanking(severity, likelihood, detectability)
	if err != nil {
		t.Fatalf("risk ranking: %v", err)
	}
	e.Risk = risk
	return e
}
