package domain

// Disposition is a team's stance on continued use of a technology or
// version. This is the approval vocabulary, not the policy severity axis.
type Disposition string

const (
	DispositionInvest    Disposition = "invest"
	DispositionTolerate  Disposition = "tolerate"
	DispositionMigrate   Disposition = "migrate"
	DispositionEliminate Disposition = "eliminate"
)

// Known reports whether d is part of the approval vocabulary.
func (d Disposition) Known() bool {
	switch d {
	case DispositionInvest, DispositionTolerate, DispositionMigrate, DispositionEliminate:
		return true
	}
	return false
}

// ApprovalLevel tags which of the three precedence levels produced an
// effective approval. Exactly one level applies per resolution:
// version > technology > default.
type ApprovalLevel string

const (
	ApprovalLevelVersion    ApprovalLevel = "version"
	ApprovalLevelTechnology ApprovalLevel = "technology"
	ApprovalLevelDefault    ApprovalLevel = "default"
)

// ApprovalEdge is the attribute set of a (Team)-[APPROVES]->(Technology|Version)
// relationship as stored in the graph. VersionConstraint is only populated on
// technology-level edges.
type ApprovalEdge struct {
	Time              Disposition `json:"time"`
	ApprovedAt        string      `json:"approvedAt,omitempty"`
	DeprecatedAt      string      `json:"deprecatedAt,omitempty"`
	EOLDate           string      `json:"eolDate,omitempty"`
	MigrationTarget   string      `json:"migrationTarget,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	ApprovedBy        string      `json:"approvedBy,omitempty"`
	VersionConstraint string      `json:"versionConstraint,omitempty"`
}

// Approval is the effective approval block after precedence resolution.
// A default-level approval is synthetic: no edge exists and the disposition
// is eliminate (default-deny).
type Approval struct {
	Level             ApprovalLevel `json:"level"`
	Time              Disposition   `json:"time"`
	ApprovedAt        string        `json:"approvedAt,omitempty"`
	DeprecatedAt      string        `json:"deprecatedAt,omitempty"`
	EOLDate           string        `json:"eolDate,omitempty"`
	MigrationTarget   string        `json:"migrationTarget,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	ApprovedBy        string        `json:"approvedBy,omitempty"`
	VersionConstraint string        `json:"versionConstraint,omitempty"`
}

// ResolvedApproval is the full resolver output for a (team, technology[,
// version]) triple. ConstraintSatisfied is set only when a version was
// requested, resolution landed on a technology-level edge, and that edge
// carries a parseable version constraint.
type ResolvedApproval struct {
	Team                string   `json:"team"`
	Technology          string   `json:"technology"`
	Category            string   `json:"category,omitempty"`
	Vendor              string   `json:"vendor,omitempty"`
	Version             string   `json:"version,omitempty"`
	ConstraintSatisfied *bool    `json:"constraintSatisfied,omitempty"`
	Approval            Approval `json:"approval"`
}
