package services

import (
	"context"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/sse"
)

// In-memory repo fakes. A non-nil err makes every call fail with it, standing
// in for an unreachable store.

type fakeTeamRepo struct {
	teams map[string]*domain.Team
	err   error
}

func (f *fakeTeamRepo) GetByName(_ context.Context, name string) (*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teams[name], nil
}

func (f *fakeTeamRepo) List(context.Context) ([]*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeamRepo) Upsert(_ context.Context, team *domain.Team) error {
	if f.err != nil {
		return f.err
	}
	if f.teams == nil {
		f.teams = map[string]*domain.Team{}
	}
	f.teams[team.Name] = team
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.teams, name)
	return nil
}

type fakeTechnologyRepo struct {
	technologies map[string]*domain.Technology
	versions     map[string]*domain.Version // keyed technology@version
	err          error
}

func (f *fakeTechnologyRepo) GetByName(_ context.Context, name string) (*domain.Technology, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.technologies[name], nil
}

func (f *fakeTechnologyRepo) List(_ context.Context, category, vendor string) ([]*domain.Technology, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Technology, 0, len(f.technologies))
	for _, tech := range f.technologies {
		if category != "" && tech.Category != category {
			continue
		}
		if vendor != "" && tech.Vendor != vendor {
			continue
		}
		out = append(out, tech)
	}
	return out, nil
}

func (f *fakeTechnologyRepo) Upsert(_ context.Context, tech *domain.Technology) error {
	if f.err != nil {
		return f.err
	}
	if f.technologies == nil {
		f.technologies = map[string]*domain.Technology{}
	}
	f.technologies[tech.Name] = tech
	return nil
}

func (f *fakeTechnologyRepo) Delete(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.technologies, name)
	return nil
}

func (f *fakeTechnologyRepo) GetVersion(_ context.Context, technology, version string) (*domain.Version, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.versions[technology+"@"+version], nil
}

func (f *fakeTechnologyRepo) ListVersions(_ context.Context, technology string) ([]*domain.Version, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Version
	for _, v := range f.versions {
		if v.Technology == technology {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeTechnologyRepo) UpsertVersion(_ context.Context, v *domain.Version) error {
	if f.err != nil {
		return f.err
	}
	if f.versions == nil {
		f.versions = map[string]*domain.Version{}
	}
	f.versions[v.Technology+"@"+v.Version] = v
	return nil
}

type fakeApprovalRepo struct {
	technologyEdges map[string]*domain.ApprovalEdge // keyed team|technology
	versionEdges    map[string]*domain.ApprovalEdge // keyed team|technology@version
	err             error
}

func (f *fakeApprovalRepo) TechnologyApproval(_ context.Context, team, technology string) (*domain.ApprovalEdge, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.technologyEdges[team+"|"+technology], nil
}

func (f *fakeApprovalRepo) VersionApproval(_ context.Context, team, technology, version string) (*domain.ApprovalEdge, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.versionEdges[team+"|"+technology+"@"+version], nil
}

func (f *fakeApprovalRepo) UpsertTechnologyApproval(_ context.Context, team, technology string, edge *domain.ApprovalEdge) error {
	if f.err != nil {
		return f.err
	}
	if f.technologyEdges == nil {
		f.technologyEdges = map[string]*domain.ApprovalEdge{}
	}
	f.technologyEdges[team+"|"+technology] = edge
	return nil
}

func (f *fakeApprovalRepo) UpsertVersionApproval(_ context.Context, team, technology, version string, edge *domain.ApprovalEdge) error {
	if f.err != nil {
		return f.err
	}
	if f.versionEdges == nil {
		f.versionEdges = map[string]*domain.ApprovalEdge{}
	}
	f.versionEdges[team+"|"+technology+"@"+version] = edge
	return nil
}

func (f *fakeApprovalRepo) RemoveTechnologyApproval(_ context.Context, team, technology string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.technologyEdges, team+"|"+technology)
	return nil
}

type fakeUsageRepo struct {
	edges []domain.UsageEdge
	err   error
}

func (f *fakeUsageRepo) EdgesForTeam(ctx context.Context, team string) ([]domain.UsageEdge, error) {
	return f.Edges(ctx, team, "")
}

func (f *fakeUsageRepo) Edges(_ context.Context, team, technology string) ([]domain.UsageEdge, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.UsageEdge
	for _, e := range f.edges {
		if team != "" && e.Team != team {
			continue
		}
		if technology != "" && e.Technology != technology {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeUsageRepo) RecordUsage(_ context.Context, team, technology string, systemCount int, firstUsed, lastVerified string) error {
	if f.err != nil {
		return f.err
	}
	f.edges = append(f.edges, domain.UsageEdge{
		Team:         team,
		Technology:   technology,
		SystemCount:  systemCount,
		FirstUsed:    firstUsed,
		LastVerified: lastVerified,
	})
	return nil
}

type attachedEdge struct{ from, to string }

type fakePolicyRepo struct {
	policies  map[string]*domain.Policy
	governing map[string][]domain.GoverningPolicy // keyed team|technology
	governs   []attachedEdge
	subjectTo []attachedEdge
	enforces  []attachedEdge
	err       error
}

func (f *fakePolicyRepo) GetByName(_ context.Context, name string) (*domain.Policy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policies[name], nil
}

func (f *fakePolicyRepo) List(context.Context) ([]*domain.Policy, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Policy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePolicyRepo) Upsert(_ context.Context, policy *domain.Policy) error {
	if f.err != nil {
		return f.err
	}
	if f.policies == nil {
		f.policies = map[string]*domain.Policy{}
	}
	f.policies[policy.Name] = policy
	return nil
}

func (f *fakePolicyRepo) Delete(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.policies, name)
	return nil
}

func (f *fakePolicyRepo) ActiveGoverning(_ context.Context, team, technology string) ([]domain.GoverningPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.governing[team+"|"+technology], nil
}

func (f *fakePolicyRepo) AttachGoverns(_ context.Context, policy, technology string) error {
	if f.err != nil {
		return f.err
	}
	f.governs = append(f.governs, attachedEdge{policy, technology})
	return nil
}

func (f *fakePolicyRepo) AttachSubjectTo(_ context.Context, team, policy string) error {
	if f.err != nil {
		return f.err
	}
	f.subjectTo = append(f.subjectTo, attachedEdge{team, policy})
	return nil
}

func (f *fakePolicyRepo) AttachEnforces(_ context.Context, team, policy string) error {
	if f.err != nil {
		return f.err
	}
	f.enforces = append(f.enforces, attachedEdge{team, policy})
	return nil
}

type fakeSystemRepo struct {
	systems    map[string]*domain.System
	components []attachedEdge
	err        error
}

func (f *fakeSystemRepo) List(context.Context) ([]*domain.System, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.System, 0, len(f.systems))
	for _, s := range f.systems {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSystemRepo) Upsert(_ context.Context, system *domain.System) error {
	if f.err != nil {
		return f.err
	}
	if f.systems == nil {
		f.systems = map[string]*domain.System{}
	}
	f.systems[system.Name] = system
	return nil
}

func (f *fakeSystemRepo) Delete(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.systems, name)
	return nil
}

func (f *fakeSystemRepo) AttachComponent(_ context.Context, system string, component *domain.Component) error {
	if f.err != nil {
		return f.err
	}
	f.components = append(f.components, attachedEdge{system, component.Name})
	return nil
}

// fakePublisher records every published message.
type fakePublisher struct {
	messages []sse.Message
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, msg sse.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}
