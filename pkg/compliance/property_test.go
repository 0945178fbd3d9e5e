//go:build property
// +build property

// Property-based tests for the compliance engine: relevance monotonicity
// and validation idempotence over randomized analyses.
package compliance_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
)

var allStandards = []compliance.StandardID{
	compliance.StandardIEC61511,
	compliance.StandardISO31000,
	compliance.StandardOSHAPSM,
}

func genFactor() gopter.Gen {
	return gen.IntRange(hazop.FactorMin, hazop.FactorMax)
}

func entryWithFactors(sev, lik, det int) hazop.AnalysisEntry {
	risk, err := hazop.NewRiskRanking(sev, lik, det)
	if err != nil {
		panic(err)
	}
	return hazop.AnalysisEntry{
		ID:           "e1",
		NodeID:       "n1",
		GuideWord:    hazop.GuideMore,
		Parameter:    "pressure",
		Deviation:    "more pressure",
		Causes:       []string{"valve failure"},
		Consequences: []string{"overpressure"},
		Safeguards:   []string{"relief valve"},
		Risk:         risk,
	}
}

// Raising any single risk factor never shrinks the relevant-clause set.
func TestRelevanceMonotonicityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	eng := compliance.NewEngine(nil)

	properties.Property("higher risk never yields fewer clauses", prop.ForAll(
		func(sev, lik, det, sev2 int) bool {
			if sev2 < sev {
				sev, sev2 = sev2, sev
			}
			lower := entryWithFactors(sev, lik, det)
			higher := entryWithFactors(sev2, lik, det)
			opts := compliance.Options{HasLOPA: true}
			return len(eng.RelevantClauses(&higher, allStandards, opts)) >=
				len(eng.RelevantClauses(&lower, allStandards, opts))
		},
		genFactor(), genFactor(), genFactor(), genFactor(),
	))

	properties.TestingRun(t)
}

// Validation over identical inputs is byte-identical.
func TestValidationIdempotenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	eng := compliance.NewEngine(nil)

	properties.Property("validate twice, get the same result", prop.ForAll(
		func(sev, lik, det int, lopa bool) bool {
			entries := []hazop.AnalysisEntry{entryWithFactors(sev, lik, det)}
			opts := compliance.Options{HasLOPA: lopa}
			a := eng.ValidateCompliance(entries, allStandards, opts)
			b := eng.ValidateCompliance(entries, allStandards, opts)
			return reflect.DeepEqual(a, b)
		},
		genFactor(), genFactor(), genFactor(), gen.Bool(),
	))

	properties.TestingRun(t)
}
