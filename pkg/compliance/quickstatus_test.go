package compliance

import (
	"strings"
	"testing"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

func TestQuickComplianceStatusDefaultsToMandatoryStandards(t *testing.T) {
	eng := NewEngine(nil)
	entries := []hazop.AnalysisEntry{fullEntry(t, "e1", "n1", 3, 3, 3)}

	qs := eng.QuickComplianceStatus(entries, nil, Options{})
	if len(qs.StandardStatuses) != len(MandatoryStandards) {
		t.Fatalf("expected %d standard statuses, got %d",
			len(MandatoryStandards), len(qs.StandardStatuses))
	}
	for _, std := range MandatoryStandards {
		if _, ok := qs.StandardStatuses[std]; !ok {
			t.Errorf("missing status for %s", std)
		}
	}
}

func TestQuickComplianceStatusEmptyAnalysis(t *testing.T) {
	eng := NewEngine(nil)
	qs := eng.QuickComplianceStatus(nil, nil, Options{})
	if qs.OverallStatus != StatusNotAssessed {
		t.Fatalf("OverallStatus = %s, want not_assessed", qs.OverallStatus)
	}
	if qs.PercentageComplete != 0 || qs.CriticalGapCount != 0 {
		t.Fatalf("unexpected numbers for empty analysis: %+v", qs)
	}
}

func TestMissingRequirementsUndocumentedEntry(t *testing.T) {
	entry := bareEntry("e1", "n1")
	mr := GetMissingRequirements([]hazop.AnalysisEntry{entry})

	if !anyContains(mr.Documentation, "causes") {
		t.Errorf("documentation bucket should mention causes: %v", mr.Documentation)
	}
	if !anyContains(mr.Documentation, "consequences") {
		t.Errorf("documentation bucket should mention consequences: %v", mr.Documentation)
	}
	if !anyContains(mr.RiskAssessment, "risk assessment") {
		t.Errorf("risk assessment bucket: %v", mr.RiskAssessment)
	}
	if !anyContains(mr.Safeguards, "safeguard") {
		t.Errorf("safeguards bucket: %v", mr.Safeguards)
	}
	if len(mr.Recommendations) != 0 {
		t.Errorf("unranked entry must not demand recommendations: %v", mr.Recommendations)
	}
	if len(mr.LOPA) != 0 {
		t.Errorf("unranked entry must not demand LOPA: %v", mr.LOPA)
	}
}

func TestMissingRequirementsHighRiskNeedsRecommendations(t *testing.T) {
	entry := withRisk(t, bareEntry("e1", "n1"), 5, 5, 5) // score 125 → high
	mr := GetMissingRequirements([]hazop.AnalysisEntry{entry})

	if !anyContains(mr.Recommendations, "high-risk") {
		t.Fatalf("recommendations bucket should mention high-risk: %v", mr.Recommendations)
	}
}

func TestMissingRequirementsSeverityTriggersLOPA(t *testing.T) {
	entry := withRisk(t, bareEntry("e1", "n1"), 4, 1, 1) // severity 4, score 4
	mr := GetMissingRequirements([]hazop.AnalysisEntry{entry})

	if !anyContains(mr.LOPA, "LOPA") {
		t.Fatalf("LOPA bucket should mention LOPA: %v", mr.LOPA)
	}
}

func TestMissingRequirementsFullyDocumentedAnalysis(t *testing.T) {
	entry := fullEntry(t, "e1", "n1", 2, 2, 2) // low risk, fully documented
	mr := GetMissingRequirements([]hazop.AnalysisEntry{entry})

	if len(mr.Documentation) != 0 || len(mr.RiskAssessment) != 0 ||
		len(mr.Safeguards) != 0 || len(mr.Recommendations) != 0 || len(mr.LOPA) != 0 {
		t.Fatalf("expected all buckets empty, got %+v", mr)
	}
}

func anyContains(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
