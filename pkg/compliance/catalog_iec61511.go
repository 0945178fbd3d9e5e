package compliance

import "github.com/procsafe/hazard-engine/pkg/hazop"

// iec61511Clauses is the built-in catalog for IEC 61511 (functional safety
// of safety instrumented systems for the process industry sector). Clause
// numbering follows Part 1.
var iec61511Clauses = []Clause{
	{
		ID:    "61511-8.2",
		Title: "Hazard and risk assessment performed for each identified deviation",
		Keywords: []string{
			"hazard", "risk assessment", "risk ranking", "severity",
			"likelihood", "consequence analysis",
		},
		RequiresEvidence: false,
	},
	{
		ID:    "61511-8.2.2",
		Title: "Causes of each hazardous event identified and documented",
		Keywords: []string{
			"cause", "failure", "malfunction", "human error", "root cause",
			"valve failure", "pump failure", "instrument failure",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "61511-8.2.3",
		Title: "Consequences of hazardous events evaluated",
		Keywords: []string{
			"consequence", "release", "overpressure", "fire", "explosion",
			"toxic", "injury", "environmental",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "61511-9.2",
		Title: "Allocation of safety functions to protection layers",
		Keywords: []string{
			"protection layer", "safety function", "allocation",
			"relief valve", "alarm", "interlock", "trip",
		},
		RequiresLOPA: true,
	},
	{
		ID:    "61511-9.3",
		Title: "Required safety integrity level determined for each safety instrumented function",
		Keywords: []string{
			"sil", "safety integrity level", "sif", "risk reduction",
			"safety instrumented function",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "61511-9.4",
		Title: "Independence of protection layers verified",
		Keywords: []string{
			"independent", "independence", "common cause", "separation",
			"diverse", "redundant",
		},
		MinRiskLevel: hazop.RiskHigh,
		RequiresLOPA: true,
	},
	{
		ID:    "61511-10.3",
		Title: "Safety requirements specified for the safety instrumented system",
		Keywords: []string{
			"safety requirement", "specification", "sis", "shutdown",
			"emergency shutdown", "esd", "safe state",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "61511-11.3",
		Title: "Safeguards identified for hazardous deviations",
		Keywords: []string{
			"safeguard", "protection", "mitigation", "barrier",
			"prevention", "detection",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "61511-11.9",
		Title: "Manual shutdown means provided independent of the logic solver",
		Keywords: []string{
			"manual shutdown", "manual intervention", "operator action",
			"hand switch", "manual trip",
		},
		MinRiskLevel: hazop.RiskHigh,
	},
	{
		ID:    "61511-12.4",
		Title: "Recommendations tracked to resolution with responsible parties",
		Keywords: []string{
			"recommendation", "action item", "follow-up", "resolution",
			"responsible", "tracking",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "61511-16.2",
		Title: "Proof test intervals defined for safety instrumented functions",
		Keywords: []string{
			"proof test", "test interval", "inspection", "periodic test",
			"functional test",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "61511-5.2",
		Title: "Management of functional safety: competence and responsibilities assigned",
		Keywords: []string{
			"competence", "training", "responsibility", "management of change",
			"procedure",
		},
		RequiresEvidence: true,
	},
}
