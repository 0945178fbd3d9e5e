package compliance

import (
	"testing"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

func TestExtractKeywordsEmptyInput(t *testing.T) {
	ks := ExtractKeywords(nil)
	for name, set := range map[string]TermSet{
		"causes":          ks.Causes,
		"consequences":    ks.Consequences,
		"safeguards":      ks.Safeguards,
		"recommendations": ks.Recommendations,
		"parameters":      ks.Parameters,
		"deviations":      ks.Deviations,
	} {
		if len(set) != 0 {
			t.Errorf("expected empty %s set, got %d terms", name, len(set))
		}
	}
}

func TestExtractKeywordsFullStringAndTerms(t *testing.T) {
	entry := hazop.AnalysisEntry{
		ID:     "e1",
		NodeID: "n1",
		Causes: []string{"Control VALVE failure"},
	}
	ks := ExtractKeywords([]hazop.AnalysisEntry{entry})

	if !ks.Causes.Contains("control valve failure") {
		t.Error("full lowercased string missing from causes set")
	}
	for _, term := range []string{"control", "valve", "failure"} {
		if !ks.Causes.Contains(term) {
			t.Errorf("key term %q missing from causes set", term)
		}
	}
}

func TestExtractKeywordsShortTokensDropped(t *testing.T) {
	entry := hazop.AnalysisEntry{Causes: []string{"no ice in the pump"}}
	ks := ExtractKeywords([]hazop.AnalysisEntry{entry})

	for _, short := range []string{"no", "ice", "in", "the"} {
		if ks.Causes.Contains(short) {
			t.Errorf("short token %q should not be a key term", short)
		}
	}
	if !ks.Causes.Contains("pump") {
		t.Error("expected key term \"pump\"")
	}
}

func TestExtractKeywordsStripsPunctuation(t *testing.T) {
	entry := hazop.AnalysisEntry{Safeguards: []string{"alarm, (interlock)."}}
	ks := ExtractKeywords([]hazop.AnalysisEntry{entry})

	if !ks.Safeguards.Contains("alarm") {
		t.Error("expected punctuation-stripped term \"alarm\"")
	}
	if !ks.Safeguards.Contains("interlock") {
		t.Error("expected punctuation-stripped term \"interlock\"")
	}
}

func TestExtractKeywordsParameterAndDeviationFullValueOnly(t *testing.T) {
	entry := hazop.AnalysisEntry{
		Parameter: "Reactor Temperature",
		Deviation: "More Temperature Than Design",
	}
	ks := ExtractKeywords([]hazop.AnalysisEntry{entry})

	if !ks.Parameters.Contains("reactor temperature") {
		t.Error("expected full parameter value")
	}
	if ks.Parameters.Contains("reactor") {
		t.Error("parameters must not be tokenized")
	}
	if !ks.Deviations.Contains("more temperature than design") {
		t.Error("expected full deviation value")
	}
	if ks.Deviations.Contains("temperature") {
		t.Error("deviations must not be tokenized")
	}
}
