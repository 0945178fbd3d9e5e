package compliance

import (
	"fmt"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// QuickStatus is the dashboard projection of a full assessment.
type QuickStatus struct {
	OverallStatus      Status                `json:"overall_status"`
	PercentageComplete int                   `json:"percentage_complete"`
	CriticalGapCount   int                   `json:"critical_gap_count"`
	StandardStatuses   map[StandardID]Status `json:"standard_statuses"`
}

// QuickComplianceStatus runs an assessment and reduces it to the dashboard
// view. A nil or empty standards list defaults to the mandatory standards.
func (e *Engine) QuickComplianceStatus(entries []hazop.AnalysisEntry, standards []StandardID, opts Options) QuickStatus {
	if len(standards) == 0 {
		standards = MandatoryStandards
	}

	qs := QuickStatus{
		OverallStatus:    StatusNotAssessed,
		StandardStatuses: make(map[StandardID]Status),
	}
	if len(entries) < MinEntriesForAssessment {
		for _, std := range standards {
			qs.StandardStatuses[std] = StatusNotAssessed
		}
		return qs
	}

	ctx := BuildContext(entries, opts)
	assessments := e.assess(entries, standards, opts)

	summaries := make([]StandardSummary, 0, len(assessments))
	for _, a := range assessments {
		summaries = append(summaries, a.summary)
		qs.StandardStatuses[a.standard] = a.summary.Status
		qs.CriticalGapCount += len(criticalGaps(a, ctx))
	}
	qs.OverallStatus = overallStatus(summaries)
	qs.PercentageComplete = meanPercentage(summaries)
	return qs
}

// MissingRequirements buckets plain-language gap messages by concern. Every
// bucket is empty when each entry is fully documented, risk assessed, and
// covered by recommendations and LOPA where warranted.
type MissingRequirements struct {
	Documentation   []string `json:"documentation"`
	RiskAssessment  []string `json:"risk_assessment"`
	Safeguards      []string `json:"safeguards"`
	Recommendations []string `json:"recommendations"`
	LOPA            []string `json:"lopa"`
}

// GetMissingRequirements scans entries directly, independent of any clause
// catalog, and reports what the study still lacks.
func GetMissingRequirements(entries []hazop.AnalysisEntry) MissingRequirements {
	var mr MissingRequirements
	for i := range entries {
		e := &entries[i]
		label := entryLabel(e)

		if len(e.Causes) == 0 {
			mr.Documentation = append(mr.Documentation,
				fmt.Sprintf("%s: no causes documented", label))
		}
		if len(e.Consequences) == 0 {
			mr.Documentation = append(mr.Documentation,
				fmt.Sprintf("%s: no consequences documented", label))
		}
		if e.Risk == nil {
			mr.RiskAssessment = append(mr.RiskAssessment,
				fmt.Sprintf("%s: no risk assessment recorded", label))
		}
		if len(e.Safeguards) == 0 {
			mr.Safeguards = append(mr.Safeguards,
				fmt.Sprintf("%s: no safeguard identified", label))
		}
		if e.IsHighRisk() && len(e.Recommendations) == 0 {
			mr.Recommendations = append(mr.Recommendations,
				fmt.Sprintf("%s: high-risk deviation without recommendations", label))
		}
		if e.Risk != nil && e.Risk.Severity >= hazop.LOPASeverityFloor {
			mr.LOPA = append(mr.LOPA,
				fmt.Sprintf("%s: severity %d warrants LOPA review", label, e.Risk.Severity))
		}
	}
	return mr
}

func entryLabel(e *hazop.AnalysisEntry) string {
	if e.NodeID != "" {
		return fmt.Sprintf("node %s / %s %s", e.NodeID, e.GuideWord, e.Parameter)
	}
	return "entry " + e.ID
}
