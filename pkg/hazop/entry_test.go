package hazop

import "testing"

func TestEntryValidate(t *testing.T) {
	risk, _ := NewRiskRanking(3, 3, 3)
	good := AnalysisEntry{
		ID:        "e1",
		NodeID:    "n1",
		GuideWord: GuideMore,
		Parameter: "pressure",
		Risk:      risk,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	cases := map[string]func(AnalysisEntry) AnalysisEntry{
		"missing id":      func(e AnalysisEntry) AnalysisEntry { e.ID = ""; return e },
		"missing node":    func(e AnalysisEntry) AnalysisEntry { e.NodeID = ""; return e },
		"bad guide word":  func(e AnalysisEntry) AnalysisEntry { e.GuideWord = "maybe"; return e },
		"corrupt ranking": func(e AnalysisEntry) AnalysisEntry { r := *e.Risk; r.Score = 99; e.Risk = &r; return e },
	}
	for name, mutate := range cases {
		bad := mutate(good)
		if err := bad.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestGuideWordValid(t *testing.T) {
	for _, gw := range GuideWords {
		if !gw.Valid() {
			t.Errorf("%s should be valid", gw)
		}
	}
	if GuideWord("sometimes").Valid() {
		t.Error("unknown guide word accepted")
	}
}

func TestEntryRiskHelpers(t *testing.T) {
	high, _ := NewRiskRanking(5, 5, 5)
	e := AnalysisEntry{Risk: high, Safeguards: []string{"psv"}}
	if !e.IsHighRisk() || !e.HasSafeguards() || e.HasRecommendations() {
		t.Fatalf("helper misbehavior: %+v", e)
	}
	var unranked AnalysisEntry
	if unranked.IsHighRisk() {
		t.Error("entry without ranking reported high risk")
	}
}
