package services

import (
	"context"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/observability"
	"github.com/techgov/catalog-backend/internal/platform/logger"
)

// ViolationFilters narrows the evaluation conjunctively. All three are
// case-sensitive exact matches; an unrecognized severity simply matches
// nothing.
type ViolationFilters struct {
	Severity   string
	Team       string
	Technology string
}

// PolicyService derives policy violations from current graph state. A
// violation is a (team, technology, policy) where the team uses the
// technology without a technology-level approval edge while an active policy
// it is subject to governs that technology.
type PolicyService interface {
	FindViolations(ctx context.Context, filters ViolationFilters) (*domain.ViolationReport, error)
}

type policyService struct {
	log      *logger.Logger
	usage    graph.UsageRepo
	policies graph.PolicyRepo
	tracer   trace.Tracer
}

func NewPolicyService(baseLog *logger.Logger, usage graph.UsageRepo, policies graph.PolicyRepo) PolicyService {
	return &policyService{
		log:      baseLog.With("service", "PolicyService"),
		usage:    usage,
		policies: policies,
		tracer:   otel.Tracer("services/policy"),
	}
}

func (s *policyService) FindViolations(ctx context.Context, filters ViolationFilters) (*domain.ViolationReport, error) {
	ctx, span := s.tracer.Start(ctx, "PolicyService.FindViolations")
	defer span.End()
	timer := prometheus.NewTimer(observability.ViolationEvaluationDuration)
	defer timer.ObserveDuration()
	observability.ViolationEvaluationsTotal.Inc()

	edges, err := s.usage.Edges(ctx, strings.TrimSpace(filters.Team), strings.TrimSpace(filters.Technology))
	if err != nil {
		return nil, err
	}

	report := &domain.ViolationReport{Violations: []domain.Violation{}}
	for _, edge := range edges {
		// Violation detection is technology-level only: a version-scoped
		// approval does not exempt a team here, even though it wins during
		// approval resolution. Kept as-is pending a product decision.
		if edge.HasApproval {
			continue
		}
		governing, err := s.policies.ActiveGoverning(ctx, edge.Team, edge.Technology)
		if err != nil {
			return nil, err
		}
		for _, p := range governing {
			if filters.Severity != "" && string(p.Severity) != filters.Severity {
				continue
			}
			report.Violations = append(report.Violations, domain.Violation{
				Team:              edge.Team,
				Technology:        edge.Technology,
				Category:          edge.Category,
				RiskLevel:         edge.RiskLevel,
				PolicyName:        p.Name,
				PolicyDescription: p.Description,
				Severity:          p.Severity,
				RuleType:          p.RuleType,
				EnforcedBy:        p.EnforcedBy,
			})
		}
	}

	sortViolations(report.Violations)
	for _, v := range report.Violations {
		report.Summary.Add(v.Severity)
	}
	recordViolationGauges(report.Summary)
	return report, nil
}

// sortViolations orders for triage: severity rank, then team, then
// technology, then policy name for full determinism.
func sortViolations(violations []domain.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra < rb
		}
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Technology != b.Technology {
			return a.Technology < b.Technology
		}
		return a.PolicyName < b.PolicyName
	})
}

func recordViolationGauges(sum domain.SeveritySummary) {
	observability.ViolationsFound.WithLabelValues(string(domain.SeverityCritical)).Set(float64(sum.Critical))
	observability.ViolationsFound.WithLabelValues(string(domain.SeverityError)).Set(float64(sum.Error))
	observability.ViolationsFound.WithLabelValues(string(domain.SeverityWarning)).Set(float64(sum.Warning))
	observability.ViolationsFound.WithLabelValues(string(domain.SeverityInfo)).Set(float64(sum.Info))
}
