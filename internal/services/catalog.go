package services

import (
	"context"
	"strings"

	"github.com/techgov/catalog-backend/internal/data/graph"
	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/semverutil"
	"github.com/techgov/catalog-backend/internal/sse"
)

// EventPublisher receives catalog change events. Wired to the redis bus when
// one is configured, otherwise straight to the in-process SSE hub.
type EventPublisher interface {
	Publish(ctx context.Context, msg sse.Message) error
}

// CatalogService is the write/read surface for catalog entities and their
// relationships. All decision logic lives in the resolver/evaluator/summarizer
// services; this one is plumbing plus input validation plus change events.
type CatalogService interface {
	ListTeams(ctx context.Context) ([]*domain.Team, error)
	GetTeam(ctx context.Context, name string) (*domain.Team, error)
	UpsertTeam(ctx context.Context, team *domain.Team) error
	DeleteTeam(ctx context.Context, name string) error

	ListTechnologies(ctx context.Context, category, vendor string) ([]*domain.Technology, error)
	GetTechnology(ctx context.Context, name string) (*domain.Technology, error)
	UpsertTechnology(ctx context.Context, tech *domain.Technology) error
	DeleteTechnology(ctx context.Context, name string) error
	ListVersions(ctx context.Context, technology string) ([]*domain.Version, error)
	AddVersion(ctx context.Context, v *domain.Version) error

	ListPolicies(ctx context.Context) ([]*domain.Policy, error)
	GetPolicy(ctx context.Context, name string) (*domain.Policy, error)
	UpsertPolicy(ctx context.Context, policy *domain.Policy) error
	DeletePolicy(ctx context.Context, name string) error
	AttachGoverns(ctx context.Context, policy, technology string) error
	AttachSubjectTo(ctx context.Context, team, policy string) error
	AttachEnforces(ctx context.Context, team, policy string) error

	ListSystems(ctx context.Context) ([]*domain.System, error)
	UpsertSystem(ctx context.Context, system *domain.System) error
	DeleteSystem(ctx context.Context, name string) error
	AttachComponent(ctx context.Context, system string, component *domain.Component) error

	RecordUsage(ctx context.Context, team, technology string, systemCount int, firstUsed, lastVerified string) error
	UpsertApproval(ctx context.Context, team, technology, version string, edge *domain.ApprovalEdge) error
	RemoveApproval(ctx context.Context, team, technology string) error
}

type catalogService struct {
	log          *logger.Logger
	teams        graph.TeamRepo
	technologies graph.TechnologyRepo
	approvals    graph.ApprovalRepo
	usage        graph.UsageRepo
	policies     graph.PolicyRepo
	systems      graph.SystemRepo
	events       EventPublisher
}

func NewCatalogService(
	baseLog *logger.Logger,
	teams graph.TeamRepo,
	technologies graph.TechnologyRepo,
	approvals graph.ApprovalRepo,
	usage graph.UsageRepo,
	policies graph.PolicyRepo,
	systems graph.SystemRepo,
	events EventPublisher,
) CatalogService {
	return &catalogService{
		log:          baseLog.With("service", "CatalogService"),
		teams:        teams,
		technologies: technologies,
		approvals:    approvals,
		usage:        usage,
		policies:     policies,
		systems:      systems,
		events:       events,
	}
}

func (s *catalogService) publish(ctx context.Context, event sse.Event, data any, channels ...string) {
	if s.events == nil {
		return
	}
	if len(channels) == 0 {
		channels = []string{sse.ChannelCatalog}
	}
	for _, channel := range channels {
		msg := sse.Message{Channel: channel, Event: event, Data: data}
		if err := s.events.Publish(ctx, msg); err != nil {
			s.log.Warn("catalog event publish failed", "event", event, "channel", channel, "error", err)
		}
	}
}

// --- Teams ---

func (s *catalogService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teams.List(ctx)
}

func (s *catalogService) GetTeam(ctx context.Context, name string) (*domain.Team, error) {
	team, err := s.teams.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apierr.NotFound("team %q not found", name)
	}
	return team, nil
}

func (s *catalogService) UpsertTeam(ctx context.Context, team *domain.Team) error {
	if team == nil || strings.TrimSpace(team.Name) == "" {
		return apierr.InvalidArgument("team name is required")
	}
	team.Name = strings.TrimSpace(team.Name)
	if err := s.teams.Upsert(ctx, team); err != nil {
		return err
	}
	s.publish(ctx, sse.EventTeamChanged, team, sse.ChannelCatalog, teamChannel(team.Name))
	return nil
}

func (s *catalogService) DeleteTeam(ctx context.Context, name string) error {
	if _, err := s.GetTeam(ctx, name); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventTeamChanged, map[string]string{"name": name, "deleted": "true"})
	return nil
}

// --- Technologies ---

func (s *catalogService) ListTechnologies(ctx context.Context, category, vendor string) ([]*domain.Technology, error) {
	return s.technologies.List(ctx, strings.TrimSpace(category), strings.TrimSpace(vendor))
}

func (s *catalogService) GetTechnology(ctx context.Context, name string) (*domain.Technology, error) {
	tech, err := s.technologies.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, apierr.NotFound("technology %q not found", name)
	}
	return tech, nil
}

func (s *catalogService) UpsertTechnology(ctx context.Context, tech *domain.Technology) error {
	if tech == nil || strings.TrimSpace(tech.Name) == "" {
		return apierr.InvalidArgument("technology name is required")
	}
	tech.Name = strings.TrimSpace(tech.Name)
	if tech.ApprovedVersionRange != "" && !semverutil.ValidConstraint(tech.ApprovedVersionRange) {
		return apierr.InvalidArgument("approvedVersionRange %q is not a valid constraint", tech.ApprovedVersionRange)
	}
	if err := s.technologies.Upsert(ctx, tech); err != nil {
		return err
	}
	s.publish(ctx, sse.EventTechnologyChanged, tech)
	return nil
}

func (s *catalogService) DeleteTechnology(ctx context.Context, name string) error {
	if _, err := s.GetTechnology(ctx, name); err != nil {
		return err
	}
	if err := s.technologies.Delete(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventTechnologyChanged, map[string]string{"name": name, "deleted": "true"})
	return nil
}

func (s *catalogService) ListVersions(ctx context.Context, technology string) ([]*domain.Version, error) {
	if _, err := s.GetTechnology(ctx, technology); err != nil {
		return nil, err
	}
	return s.technologies.ListVersions(ctx, strings.TrimSpace(technology))
}

func (s *catalogService) AddVersion(ctx context.Context, v *domain.Version) error {
	if v == nil || strings.TrimSpace(v.Technology) == "" || strings.TrimSpace(v.Version) == "" {
		return apierr.InvalidArgument("technology and version are required")
	}
	v.Technology = strings.TrimSpace(v.Technology)
	v.Version = strings.TrimSpace(v.Version)
	if _, err := s.GetTechnology(ctx, v.Technology); err != nil {
		return err
	}
	if err := s.technologies.UpsertVersion(ctx, v); err != nil {
		return err
	}
	s.publish(ctx, sse.EventVersionChanged, v)
	return nil
}

// --- Policies ---

func (s *catalogService) ListPolicies(ctx context.Context) ([]*domain.Policy, error) {
	return s.policies.List(ctx)
}

func (s *catalogService) GetPolicy(ctx context.Context, name string) (*domain.Policy, error) {
	policy, err := s.policies.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, apierr.NotFound("policy %q not found", name)
	}
	return policy, nil
}

func (s *catalogService) UpsertPolicy(ctx context.Context, policy *domain.Policy) error {
	if policy == nil || strings.TrimSpace(policy.Name) == "" {
		return apierr.InvalidArgument("policy name is required")
	}
	policy.Name = strings.TrimSpace(policy.Name)
	if !policy.Severity.Known() {
		return apierr.InvalidArgument("severity %q is not one of critical|error|warning|info", policy.Severity)
	}
	if policy.Status == "" {
		policy.Status = domain.PolicyStatusActive
	}
	if err := s.policies.Upsert(ctx, policy); err != nil {
		return err
	}
	s.publish(ctx, sse.EventPolicyChanged, policy)
	return nil
}

func (s *catalogService) DeletePolicy(ctx context.Context, name string) error {
	if _, err := s.GetPolicy(ctx, name); err != nil {
		return err
	}
	if err := s.policies.Delete(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventPolicyChanged, map[string]string{"name": name, "deleted": "true"})
	return nil
}

func (s *catalogService) AttachGoverns(ctx context.Context, policy, technology string) error {
	if _, err := s.GetPolicy(ctx, policy); err != nil {
		return err
	}
	if _, err := s.GetTechnology(ctx, technology); err != nil {
		return err
	}
	if err := s.policies.AttachGoverns(ctx, strings.TrimSpace(policy), strings.TrimSpace(technology)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventPolicyChanged, map[string]string{"policy": policy, "governs": technology})
	return nil
}

func (s *catalogService) AttachSubjectTo(ctx context.Context, team, policy string) error {
	if _, err := s.GetTeam(ctx, team); err != nil {
		return err
	}
	if _, err := s.GetPolicy(ctx, policy); err != nil {
		return err
	}
	if err := s.policies.AttachSubjectTo(ctx, strings.TrimSpace(team), strings.TrimSpace(policy)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventPolicyChanged, map[string]string{"policy": policy, "subjectTo": team}, sse.ChannelCatalog, teamChannel(team))
	return nil
}

func (s *catalogService) AttachEnforces(ctx context.Context, team, policy string) error {
	if _, err := s.GetTeam(ctx, team); err != nil {
		return err
	}
	if _, err := s.GetPolicy(ctx, policy); err != nil {
		return err
	}
	if err := s.policies.AttachEnforces(ctx, strings.TrimSpace(team), strings.TrimSpace(policy)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventPolicyChanged, map[string]string{"policy": policy, "enforcedBy": team}, sse.ChannelCatalog, teamChannel(team))
	return nil
}

// --- Systems ---

func (s *catalogService) ListSystems(ctx context.Context) ([]*domain.System, error) {
	return s.systems.List(ctx)
}

func (s *catalogService) UpsertSystem(ctx context.Context, system *domain.System) error {
	if system == nil || strings.TrimSpace(system.Name) == "" {
		return apierr.InvalidArgument("system name is required")
	}
	system.Name = strings.TrimSpace(system.Name)
	if system.Owner != "" {
		if _, err := s.GetTeam(ctx, system.Owner); err != nil {
			return err
		}
	}
	if err := s.systems.Upsert(ctx, system); err != nil {
		return err
	}
	s.publish(ctx, sse.EventSystemChanged, system)
	return nil
}

func (s *catalogService) DeleteSystem(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return apierr.InvalidArgument("system name is required")
	}
	if err := s.systems.Delete(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventSystemChanged, map[string]string{"name": name, "deleted": "true"})
	return nil
}

func (s *catalogService) AttachComponent(ctx context.Context, system string, component *domain.Component) error {
	if strings.TrimSpace(system) == "" {
		return apierr.InvalidArgument("system name is required")
	}
	if component == nil || strings.TrimSpace(component.Name) == "" {
		return apierr.InvalidArgument("component name is required")
	}
	if err := s.systems.AttachComponent(ctx, strings.TrimSpace(system), component); err != nil {
		return err
	}
	s.publish(ctx, sse.EventSystemChanged, map[string]any{"system": system, "component": component})
	return nil
}

// --- Usage and approvals ---

func (s *catalogService) RecordUsage(ctx context.Context, team, technology string, systemCount int, firstUsed, lastVerified string) error {
	if _, err := s.GetTeam(ctx, team); err != nil {
		return err
	}
	if _, err := s.GetTechnology(ctx, technology); err != nil {
		return err
	}
	if systemCount < 0 {
		return apierr.InvalidArgument("systemCount must be >= 0")
	}
	if err := s.usage.RecordUsage(ctx, strings.TrimSpace(team), strings.TrimSpace(technology), systemCount, firstUsed, lastVerified); err != nil {
		return err
	}
	s.publish(ctx, sse.EventUsageRecorded,
		map[string]any{"team": team, "technology": technology, "systemCount": systemCount},
		sse.ChannelCatalog, teamChannel(team))
	return nil
}

func (s *catalogService) UpsertApproval(ctx context.Context, team, technology, version string, edge *domain.ApprovalEdge) error {
	team = strings.TrimSpace(team)
	technology = strings.TrimSpace(technology)
	version = strings.TrimSpace(version)
	if edge == nil {
		return apierr.InvalidArgument("approval body is required")
	}
	if !edge.Time.Known() {
		return apierr.InvalidArgument("time %q is not one of invest|tolerate|migrate|eliminate", edge.Time)
	}
	if _, err := s.GetTeam(ctx, team); err != nil {
		return err
	}
	if _, err := s.GetTechnology(ctx, technology); err != nil {
		return err
	}

	if version != "" {
		v, err := s.technologies.GetVersion(ctx, technology, version)
		if err != nil {
			return err
		}
		if v == nil {
			return apierr.NotFound("version %q of technology %q not found", version, technology)
		}
		if err := s.approvals.UpsertVersionApproval(ctx, team, technology, version, edge); err != nil {
			return err
		}
	} else {
		if edge.VersionConstraint != "" && !semverutil.ValidConstraint(edge.VersionConstraint) {
			return apierr.InvalidArgument("versionConstraint %q is not a valid constraint", edge.VersionConstraint)
		}
		if err := s.approvals.UpsertTechnologyApproval(ctx, team, technology, edge); err != nil {
			return err
		}
	}
	s.publish(ctx, sse.EventApprovalChanged,
		map[string]any{"team": team, "technology": technology, "version": version, "time": edge.Time},
		sse.ChannelCatalog, teamChannel(team))
	return nil
}

func (s *catalogService) RemoveApproval(ctx context.Context, team, technology string) error {
	if _, err := s.GetTeam(ctx, team); err != nil {
		return err
	}
	if _, err := s.GetTechnology(ctx, technology); err != nil {
		return err
	}
	if err := s.approvals.RemoveTechnologyApproval(ctx, strings.TrimSpace(team), strings.TrimSpace(technology)); err != nil {
		return err
	}
	s.publish(ctx, sse.EventApprovalRemoved,
		map[string]string{"team": team, "technology": technology},
		sse.ChannelCatalog, teamChannel(team))
	return nil
}

func teamChannel(team string) string {
	return "team:" + strings.TrimSpace(team)
}
