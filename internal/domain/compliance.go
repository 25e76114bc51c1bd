package domain

// ComplianceStatus classifies one team/technology usage edge against the
// team's own technology-level approval.
type ComplianceStatus string

const (
	ComplianceCompliant       ComplianceStatus = "compliant"
	ComplianceUnapproved      ComplianceStatus = "unapproved"
	ComplianceMigrationNeeded ComplianceStatus = "migration-needed"
	ComplianceViolation       ComplianceStatus = "violation"
	ComplianceUnknown         ComplianceStatus = "unknown"
)

// ClassifyUsage maps an approval edge (or its absence) to a compliance
// status. The mapping is exhaustive and mutually exclusive:
//
//	no edge              -> unapproved
//	invest, tolerate     -> compliant
//	migrate              -> migration-needed
//	eliminate            -> violation
//	anything else stored -> unknown
func ClassifyUsage(hasApproval bool, time Disposition) ComplianceStatus {
	if !hasApproval {
		return ComplianceUnapproved
	}
	switch time {
	case DispositionInvest, DispositionTolerate:
		return ComplianceCompliant
	case DispositionMigrate:
		return ComplianceMigrationNeeded
	case DispositionEliminate:
		return ComplianceViolation
	default:
		return ComplianceUnknown
	}
}

// UsageEdge is one (Team)-[USES]->(Technology) row as read from the graph,
// joined with the team's optional technology-level approval edge.
type UsageEdge struct {
	Team         string
	Technology   string
	Category     string
	RiskLevel    string
	SystemCount  int
	FirstUsed    string
	LastVerified string
	HasApproval  bool
	ApprovalTime Disposition
}

// UsageRow is one technology in a team's usage summary.
type UsageRow struct {
	Technology       string           `json:"technology"`
	Category         string           `json:"category,omitempty"`
	SystemCount      int              `json:"systemCount"`
	FirstUsed        string           `json:"firstUsed,omitempty"`
	LastVerified     string           `json:"lastVerified,omitempty"`
	Disposition      Disposition      `json:"disposition,omitempty"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus"`
}

// UsageCounts rolls a team's usage rows up per compliance status. Rows
// classified unknown contribute to TotalTechnologies only.
type UsageCounts struct {
	TotalTechnologies int `json:"totalTechnologies"`
	Compliant         int `json:"compliant"`
	Unapproved        int `json:"unapproved"`
	Violations        int `json:"violations"`
	MigrationNeeded   int `json:"migrationNeeded"`
}

// UsageSummary is the full summarizer output for one team.
type UsageSummary struct {
	Team    string      `json:"team"`
	Usage   []UsageRow  `json:"usage"`
	Summary UsageCounts `json:"summary"`
}

// GoverningPolicy is an active policy governing a technology that a given
// team is subject to. EnforcedBy is empty when no team enforces the policy.
type GoverningPolicy struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Severity    Severity `json:"severity"`
	RuleType    string   `json:"ruleType,omitempty"`
	EnforcedBy  string   `json:"enforcedBy,omitempty"`
}

// Violation is one derived compliance conflict. Violations are never
// persisted; they are recomputed from graph state on every evaluation.
type Violation struct {
	Team              string   `json:"team"`
	Technology        string   `json:"technology"`
	Category          string   `json:"category,omitempty"`
	RiskLevel         string   `json:"riskLevel,omitempty"`
	PolicyName        string   `json:"policyName"`
	PolicyDescription string   `json:"policyDescription,omitempty"`
	Severity          Severity `json:"severity"`
	RuleType          string   `json:"ruleType,omitempty"`
	EnforcedBy        string   `json:"enforcedBy,omitempty"`
}

// ViolationReport is the evaluator output: the ranked violation list plus
// the always-present 4-bucket severity summary.
type ViolationReport struct {
	Violations []Violation     `json:"violations"`
	Summary    SeveritySummary `json:"summary"`
}
