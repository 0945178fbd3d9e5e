package compliance

import (
	"reflect"
	"strings"
	"testing"
)

func TestEvaluateClauseKeywordMatch(t *testing.T) {
	entry := fullEntry(t, "e1", "n1", 4, 3, 3)
	clause := Clause{
		ID:       "c1",
		Standard: StandardIEC61511,
		Title:    "Safeguards identified",
		Keywords: []string{"relief valve", "alarm"},
	}

	got := EvaluateClause(&entry, clause)
	if !got.Addresses {
		t.Fatal("expected clause to be addressed")
	}
	if got.Strength != StrengthStrong {
		t.Fatalf("Strength = %s, want strong", got.Strength)
	}
	if len(got.Evidence) == 0 {
		t.Fatal("addressed clause must carry evidence")
	}
	for _, ev := range got.Evidence {
		if !strings.Contains(ev, "matched keyword") {
			t.Fatalf("unexpected evidence %q", ev)
		}
	}
}

func TestEvaluateClauseWeakEvidenceFallback(t *testing.T) {
	entry := bareEntry("e1", "n1")
	entry.Safeguards = []string{"operator rounds"}
	clause := Clause{
		ID:               "c2",
		Standard:         StandardOSHAPSM,
		Title:            "Controls documented",
		Keywords:         []string{"interlock"},
		RequiresEvidence: true,
	}

	got := EvaluateClause(&entry, clause)
	if !got.Addresses {
		t.Fatal("requires-evidence clause with documented safeguards should be addressed")
	}
	if got.Strength != StrengthWeak {
		t.Fatalf("Strength = %s, want weak", got.Strength)
	}
}

func TestEvaluateClauseNoEvidence(t *testing.T) {
	entry := bareEntry("e1", "n1")
	clause := Clause{
		ID:       "c3",
		Standard: StandardISO31000,
		Title:    "Monitoring established",
		Keywords: []string{"monitor"},
	}

	got := EvaluateClause(&entry, clause)
	if got.Addresses {
		t.Fatal("expected clause not addressed")
	}
	if len(got.Evidence) != 1 || !strings.Contains(got.Evidence[0], "no matching evidence found for:") {
		t.Fatalf("negative verdicts must still explain themselves, got %v", got.Evidence)
	}
}

func TestEvaluateClauseDeterministic(t *testing.T) {
	entry := fullEntry(t, "e1", "n1", 4, 4, 4)
	clause := Clause{
		ID:       "c4",
		Standard: StandardIEC61511,
		Keywords: []string{"pressure", "trip", "relief"},
		Title:    "Overpressure protection",
	}

	first := EvaluateClause(&entry, clause)
	for i := 0; i < 10; i++ {
		if got := EvaluateClause(&entry, clause); !reflect.DeepEqual(first, got) {
			t.Fatalf("evaluation differed on run %d:\n%+v\n%+v", i, first, got)
		}
	}
}

func TestEvaluateClauseCaseFolding(t *testing.T) {
	entry := bareEntry("e1", "n1")
	entry.Causes = []string{"PUMP CAVITATION AT LOW SUCTION HEAD"}
	clause := Clause{ID: "c5", Standard: StandardISO31000, Title: "t", Keywords: []string{"Cavitation"}}

	if got := EvaluateClause(&entry, clause); !got.Addresses {
		t.Fatal("keyword matching must ignore case")
	}
}
