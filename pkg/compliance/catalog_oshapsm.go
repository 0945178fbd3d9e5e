package compliance

import "github.com/procsafe/hazard-engine/pkg/hazop"

// oshaPSMClauses is the built-in catalog for OSHA Process Safety Management,
// 29 CFR 1910.119. IDs reference paragraph letters.
var oshaPSMClauses = []Clause{
	{
		ID:    "1910.119(e)(1)",
		Title: "Process hazard analysis performed on covered processes",
		Keywords: []string{
			"hazard analysis", "hazop", "deviation", "what-if",
			"process hazard",
		},
		RequiresEvidence: false,
	},
	{
		ID:    "1910.119(e)(3)(i)",
		Title: "Hazards of the process identified",
		Keywords: []string{
			"hazard", "cause", "release", "fire", "explosion", "toxic",
			"exposure",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "1910.119(e)(3)(iii)",
		Title: "Engineering and administrative controls applicable to the hazards documented",
		Keywords: []string{
			"control", "safeguard", "interlock", "alarm", "procedure",
			"relief", "administrative",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "1910.119(e)(3)(ii)",
		Title: "Previous incidents with catastrophic potential reviewed",
		Keywords: []string{
			"incident", "near miss", "previous", "history", "occurrence",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "1910.119(e)(3)(iv)",
		Title: "Consequences of failure of engineering and administrative controls evaluated",
		Keywords: []string{
			"consequence", "failure of control", "safeguard failure",
			"escalation", "loss of containment",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "1910.119(e)(3)(vi)",
		Title: "Qualitative evaluation of possible safety and health effects on employees",
		Keywords: []string{
			"employee", "injury", "health", "personnel", "occupational",
			"fatality",
		},
		MinRiskLevel: hazop.RiskHigh,
	},
	{
		ID:    "1910.119(e)(5)",
		Title: "Recommendations resolved and resolutions documented",
		Keywords: []string{
			"recommendation", "resolve", "corrective", "action", "schedule",
			"completed",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "1910.119(e)(6)",
		Title: "Process hazard analysis updated and revalidated at least every five years",
		Keywords: []string{
			"revalidat", "update", "five year", "periodic review",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "1910.119(f)(1)",
		Title: "Operating procedures address operating limits and deviation consequences",
		Keywords: []string{
			"operating procedure", "operating limit", "deviation",
			"consequence of deviation", "normal operation",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "1910.119(j)(4)",
		Title: "Inspection and testing of process equipment performed",
		Keywords: []string{
			"inspection", "testing", "mechanical integrity", "maintenance",
			"calibration",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "1910.119(l)(1)",
		Title: "Management of change procedures applied to process modifications",
		Keywords: []string{
			"management of change", "moc", "modification", "change",
			"temporary",
		},
		MinRiskLevel: hazop.RiskHigh,
	},
}
