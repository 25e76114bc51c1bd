package services

import (
	"context"
	"sort"
	"strings"

	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
)

// UsageService aggregates a team's technology usage against its
// technology-level approvals into per-row compliance classifications and
// roll-up counts.
type UsageService interface {
	Summarize(ctx context.Context, team string) (*domain.UsageSummary, error)
}

type usageService struct {
	log   *logger.Logger
	teams graph.TeamRepo
	usage graph.UsageRepo
}

func NewUsageService(baseLog *logger.Logger, teams graph.TeamRepo, usage graph.UsageRepo) UsageService {
	return &usageService{
		log:   baseLog.With("service", "UsageService"),
		teams: teams,
		usage: usage,
	}
}

func (s *usageService) Summarize(ctx context.Context, team string) (*domain.UsageSummary, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, apierr.InvalidArgument("team is required")
	}

	teamNode, err := s.teams.GetByName(ctx, team)
	if err != nil {
		return nil, err
	}
	if teamNode == nil {
		return nil, apierr.NotFound("team %q not found", team)
	}

	edges, err := s.usage.EdgesForTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	summary := &domain.UsageSummary{
		Team:  teamNode.Name,
		Usage: make([]domain.UsageRow, 0, len(edges)),
	}
	for _, edge := range edges {
		status := domain.ClassifyUsage(edge.HasApproval, edge.ApprovalTime)
		row := domain.UsageRow{
			Technology:       edge.Technology,
			Category:         edge.Category,
			SystemCount:      edge.SystemCount,
			FirstUsed:        edge.FirstUsed,
			LastVerified:     edge.LastVerified,
			ComplianceStatus: status,
		}
		if edge.HasApproval {
			row.Disposition = edge.ApprovalTime
		}
		summary.Usage = append(summary.Usage, row)

		switch status {
		case domain.ComplianceCompliant:
			summary.Summary.Compliant++
		case domain.ComplianceUnapproved:
			summary.Summary.Unapproved++
		case domain.ComplianceViolation:
			summary.Summary.Violations++
		case domain.ComplianceMigrationNeeded:
			summary.Summary.MigrationNeeded++
		}
		// unknown rows count toward the total only.
	}
	summary.Summary.TotalTechnologies = len(summary.Usage)

	// Widest-deployed technologies first; name breaks ties.
	sort.SliceStable(summary.Usage, func(i, j int) bool {
		a, b := summary.Usage[i], summary.Usage[j]
		if a.SystemCount != b.SystemCount {
			return a.SystemCount > b.SystemCount
		}
		return a.Technology < b.Technology
	})
	return summary, nil
}
