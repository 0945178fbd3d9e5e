package hazop

import "fmt"

// RiskLevel is the qualitative band derived from a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Score band boundaries. A score of exactly 20 is low, exactly 60 is medium.
const (
	RiskLowMax    = 20
	RiskMediumMax = 60
)

// Factor bounds for severity, likelihood, and detectability.
const (
	FactorMin = 1
	FactorMax = 5
)

// LOPASeverityFloor is the severity at which a Layers of Protection
// Analysis is expected for the scenario.
const LOPASeverityFloor = 4

// RiskRanking scores one deviation scenario. Score is always the product of
// the three factors, and Level always agrees with the score bands.
type RiskRanking struct {
	Severity      int       `json:"severity"`
	Likelihood    int       `json:"likelihood"`
	Detectability int       `json:"detectability"`
	Score         int       `json:"risk_score"`
	Level         RiskLevel `json:"risk_level"`
}

// LevelForScore maps a risk score onto its qualitative band.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= RiskLowMax:
		return RiskLow
	case score <= RiskMediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// NewRiskRanking derives the score and level from the three factors.
func NewRiskRanking(severity, likelihood, detectability int) (*RiskRanking, error) {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"severity", severity},
		{"likelihood", likelihood},
		{"detectability", detectability},
	} {
		if f.v < FactorMin || f.v > FactorMax {
			return nil, fmt.Errorf("%s %d out of range [%d,%d]", f.name, f.v, FactorMin, FactorMax)
		}
	}
	score := severity * likelihood * detectability
	return &RiskRanking{
		Severity:      severity,
		Likelihood:    likelihood,
		Detectability: detectability,
		Score:         score,
		Level:         LevelForScore(score),
	}, nil
}

// Validate enforces the score/level invariants on a ranking that arrived
// from storage rather than NewRiskRanking.
func (r *RiskRanking) Validate() error {
	if r.Severity < FactorMin || r.Severity > FactorMax ||
		r.Likelihood < FactorMin || r.Likelihood > FactorMax ||
		r.Detectability < FactorMin || r.Detectability > FactorMax {
		return fmt.Errorf("risk factors out of range [%d,%d]", FactorMin, FactorMax)
	}
	if want := r.Severity * r.Likelihood * r.Detectability; r.Score != want {
		return fmt.Errorf("risk score %d does not equal factor product %d", r.Score, want)
	}
	if want := LevelForScore(r.Score); r.Level != want {
		return fmt.Errorf("risk level %q does not match score %d (want %q)", r.Level, r.Score, want)
	}
	return nil
}
