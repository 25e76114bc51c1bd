package domain

// Team is an organizational unit. Name is the unique key across the catalog.
type Team struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

// Technology is a catalog entry (language, framework, database, tool, ...).
type Technology struct {
	Name                 string `json:"name"`
	Category             string `json:"category,omitempty"`
	Vendor               string `json:"vendor,omitempty"`
	RiskLevel            string `json:"riskLevel,omitempty"`
	ApprovedVersionRange string `json:"approvedVersionRange,omitempty"`
	LastReviewed         string `json:"lastReviewed,omitempty"`
}

// Version is scoped to a technology; (Technology, Version) is unique together.
type Version struct {
	Technology  string  `json:"technology"`
	Version     string  `json:"version"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	EOLDate     string  `json:"eolDate,omitempty"`
	Approved    bool    `json:"approved"`
	CVSSScore   float64 `json:"cvssScore,omitempty"`
}

// Policy is a governance rule. Status "active" is the only value the
// violation evaluator honors; anything else is treated as inactive.
type Policy struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	RuleType      string   `json:"ruleType,omitempty"`
	Severity      Severity `json:"severity"`
	EffectiveDate string   `json:"effectiveDate,omitempty"`
	ExpiryDate    string   `json:"expiryDate,omitempty"`
	Scope         string   `json:"scope,omitempty"`
	Status        string   `json:"status"`
}

// PolicyStatusActive is the status value that makes a policy eligible for
// violation evaluation.
const PolicyStatusActive = "active"

// System is a deployed unit owned by a team.
type System struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Criticality string `json:"criticality,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// Component is an SBOM entry a system has sources in.
type Component struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Ecosystem string `json:"ecosystem,omitempty"`
}
