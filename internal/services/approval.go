package services

import (
	"context"
	"strings"

	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/observability"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/semverutil"
)

// ApprovalService resolves the effective approval for a (team, technology,
// optional version) triple using strict precedence: a version-level APPROVES
// edge always wins over a technology-level one, and the absence of any edge
// resolves to the default-deny record.
type ApprovalService interface {
	Resolve(ctx context.Context, team, technology, version string) (*domain.ResolvedApproval, error)
}

type approvalService struct {
	log          *logger.Logger
	teams        graph.TeamRepo
	technologies graph.TechnologyRepo
	approvals    graph.ApprovalRepo
}

func NewApprovalService(
	baseLog *logger.Logger,
	teams graph.TeamRepo,
	technologies graph.TechnologyRepo,
	approvals graph.ApprovalRepo,
) ApprovalService {
	return &approvalService{
		log:          baseLog.With("service", "ApprovalService"),
		teams:        teams,
		technologies: technologies,
		approvals:    approvals,
	}
}

func (s *approvalService) Resolve(ctx context.Context, team, technology, version string) (*domain.ResolvedApproval, error) {
	team = strings.TrimSpace(team)
	technology = strings.TrimSpace(technology)
	version = strings.TrimSpace(version)
	if team == "" {
		return nil, apierr.InvalidArgument("team is required")
	}
	if technology == "" {
		return nil, apierr.InvalidArgument("technology is required")
	}

	teamNode, err := s.teams.GetByName(ctx, team)
	if err != nil {
		return nil, err
	}
	if teamNode == nil {
		return nil, apierr.NotFound("team %q not found", team)
	}

	tech, err := s.technologies.GetByName(ctx, technology)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, apierr.NotFound("technology %q not found", technology)
	}

	result := &domain.ResolvedApproval{
		Team:       teamNode.Name,
		Technology: tech.Name,
		Category:   tech.Category,
		Vendor:     tech.Vendor,
		Version:    version,
	}

	if version != "" {
		edge, err := s.approvals.VersionApproval(ctx, team, technology, version)
		if err != nil {
			return nil, err
		}
		if edge != nil {
			result.Approval = approvalFromEdge(domain.ApprovalLevelVersion, edge)
			observability.ApprovalResolutionsTotal.WithLabelValues(string(domain.ApprovalLevelVersion)).Inc()
			return result, nil
		}
		// An unknown version string has no edge to match; resolution falls
		// through to the technology level with the requested version echoed.
	}

	edge, err := s.approvals.TechnologyApproval(ctx, team, technology)
	if err != nil {
		return nil, err
	}
	if edge != nil {
		result.Approval = approvalFromEdge(domain.ApprovalLevelTechnology, edge)
		if version != "" && edge.VersionConstraint != "" {
			if ok, cerr := semverutil.Satisfies(version, edge.VersionConstraint); cerr == nil {
				result.ConstraintSatisfied = &ok
			} else {
				s.log.Debug("version constraint check skipped", "team", team, "technology", technology, "error", cerr)
			}
		}
		observability.ApprovalResolutionsTotal.WithLabelValues(string(domain.ApprovalLevelTechnology)).Inc()
		return result, nil
	}

	// Default-deny: no approval edge is never implicit permission.
	result.Approval = domain.Approval{
		Level: domain.ApprovalLevelDefault,
		Time:  domain.DispositionEliminate,
		Notes: "no explicit approval exists for this technology; unapproved technologies default to eliminate",
	}
	observability.ApprovalResolutionsTotal.WithLabelValues(string(domain.ApprovalLevelDefault)).Inc()
	return result, nil
}

func approvalFromEdge(level domain.ApprovalLevel, edge *domain.ApprovalEdge) domain.Approval {
	a := domain.Approval{
		Level:           level,
		Time:            edge.Time,
		ApprovedAt:      edge.ApprovedAt,
		DeprecatedAt:    edge.DeprecatedAt,
		EOLDate:         edge.EOLDate,
		MigrationTarget: edge.MigrationTarget,
		Notes:           edge.Notes,
		ApprovedBy:      edge.ApprovedBy,
	}
	if level == domain.ApprovalLevelTechnology {
		a.VersionConstraint = edge.VersionConstraint
	}
	return a
}
