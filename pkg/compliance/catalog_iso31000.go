package compliance

import "github.com/procsafe/hazard-engine/pkg/hazop"

// iso31000Clauses is the built-in catalog for ISO 31000 (risk management
// guidelines). Clause numbering follows the 2018 edition.
var iso31000Clauses = []Clause{
	{
		ID:    "31000-6.3",
		Title: "Scope, context and criteria of the risk assessment established",
		Keywords: []string{
			"scope", "context", "criteria", "boundary", "node",
			"design intent",
		},
		RequiresEvidence: false,
	},
	{
		ID:    "31000-6.4.2",
		Title: "Risk identification: sources of risk and their causes recorded",
		Keywords: []string{
			"cause", "source", "hazard", "threat", "failure",
			"deviation", "event",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "31000-6.4.3",
		Title: "Risk analysis: likelihood and consequences analysed",
		Keywords: []string{
			"likelihood", "probability", "consequence", "severity",
			"risk analysis", "risk score",
		},
		RequiresEvidence: false,
	},
	{
		ID:    "31000-6.4.4",
		Title: "Risk evaluation: results compared with risk criteria",
		Keywords: []string{
			"risk evaluation", "tolerable", "acceptable", "risk ranking",
			"risk matrix", "prioriti",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "31000-6.5.2",
		Title: "Risk treatment options selected and justified",
		Keywords: []string{
			"treatment", "mitigation", "control", "safeguard", "reduce",
			"eliminate", "transfer",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "31000-6.5.3",
		Title: "Risk treatment plans prepared with actions and owners",
		Keywords: []string{
			"recommendation", "action", "plan", "owner", "responsible",
			"implementation",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "31000-6.6",
		Title: "Monitoring and review of risks and controls established",
		Keywords: []string{
			"monitor", "review", "audit", "inspection", "surveillance",
			"periodic",
		},
		MinRiskLevel: hazop.RiskMedium,
	},
	{
		ID:    "31000-6.7",
		Title: "Risk assessment process and outcomes documented and reported",
		Keywords: []string{
			"document", "record", "report", "register", "traceab",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "31000-5.4.2",
		Title: "Roles, authorities and accountabilities for risk management assigned",
		Keywords: []string{
			"accountab", "authority", "role", "responsible", "assigned",
		},
		RequiresEvidence: true,
	},
	{
		ID:    "31000-6.4.3-b",
		Title: "Effectiveness of existing controls considered in the analysis",
		Keywords: []string{
			"existing control", "effectiveness", "safeguard", "barrier",
			"detection", "detectab",
		},
		MinRiskLevel: hazop.RiskHigh,
	},
}
