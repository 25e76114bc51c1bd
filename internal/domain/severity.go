package domain

// Severity is the policy severity axis. It is a strict total order used for
// violation triage and is independent from the approval disposition
// vocabulary (see Disposition).
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// severityRankUnknown sorts unrecognized severities after the four defined
// buckets while keeping the order deterministic.
const severityRankUnknown = 5

// Rank returns the triage rank: critical(1) < error(2) < warning(3) < info(4).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityError:
		return 2
	case SeverityWarning:
		return 3
	case SeverityInfo:
		return 4
	default:
		return severityRankUnknown
	}
}

// Known reports whether s is one of the four defined severity buckets.
func (s Severity) Known() bool {
	return s.Rank() != severityRankUnknown
}

// SeveritySummary is the 4-bucket violation roll-up. All buckets are always
// present in the JSON output, defaulting to 0.
type SeveritySummary struct {
	Critical int `json:"critical"`
	Error    int `json:"error"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Add increments the bucket for s. Unrecognized severities are not counted.
func (sum *SeveritySummary) Add(s Severity) {
	switch s {
	case SeverityCritical:
		sum.Critical++
	case SeverityError:
		sum.Error++
	case SeverityWarning:
		sum.Warning++
	case SeverityInfo:
		sum.Info++
	}
}
