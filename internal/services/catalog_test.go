package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/sse"
)

type catalogFixture struct {
	teams        *fakeTeamRepo
	technologies *fakeTechnologyRepo
	approvals    *fakeApprovalRepo
	usage        *fakeUsageRepo
	policies     *fakePolicyRepo
	systems      *fakeSystemRepo
	events       *fakePublisher
	svc          CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		teams: &fakeTeamRepo{teams: map[string]*domain.Team{
			"Backend Team": {Name: "Backend Team"},
		}},
		technologies: &fakeTechnologyRepo{
			technologies: map[string]*domain.Technology{
				"Java": {Name: "Java", Category: "language"},
			},
			versions: map[string]*domain.Version{
				"Java@17": {Technology: "Java", Version: "17"},
			},
		},
		approvals: &fakeApprovalRepo{},
		usage:     &fakeUsageRepo{},
		policies:  &fakePolicyRepo{},
		systems:   &fakeSystemRepo{},
		events:    &fakePublisher{},
	}
	f.svc = NewCatalogService(logger.NewNop(),
		f.teams, f.technologies, f.approvals, f.usage, f.policies, f.systems, f.events)
	return f
}

func (f *catalogFixture) lastEvent(t *testing.T) sse.Message {
	t.Helper()
	if len(f.events.messages) == 0 {
		t.Fatalf("expected a published event")
	}
	return f.events.messages[len(f.events.messages)-1]
}

func TestUpsertApprovalTechnologyLevel(t *testing.T) {
	f := newCatalogFixture()
	err := f.svc.UpsertApproval(context.Background(), "Backend Team", "Java", "", &domain.ApprovalEdge{
		Time:              domain.DispositionInvest,
		VersionConstraint: ">=11, <22",
	})
	if err != nil {
		t.Fatalf("UpsertApproval: %v", err)
	}
	if f.approvals.technologyEdges["Backend Team|Java"] == nil {
		t.Fatalf("technology edge not stored")
	}
	if got := f.lastEvent(t).Event; got != sse.EventApprovalChanged {
		t.Fatalf("event = %q, want %q", got, sse.EventApprovalChanged)
	}
}

func TestUpsertApprovalVersionLevel(t *testing.T) {
	f := newCatalogFixture()
	err := f.svc.UpsertApproval(context.Background(), "Backend Team", "Java", "17", &domain.ApprovalEdge{
		Time: domain.DispositionInvest,
	})
	if err != nil {
		t.Fatalf("UpsertApproval: %v", err)
	}
	if f.approvals.versionEdges["Backend Team|Java@17"] == nil {
		t.Fatalf("version edge not stored")
	}
}

func TestUpsertApprovalValidation(t *testing.T) {
	tests := []struct {
		name       string
		team       string
		technology string
		version    string
		edge       *domain.ApprovalEdge
		wantStatus int
	}{
		{"nil body", "Backend Team", "Java", "", nil, http.StatusBadRequest},
		{"unknown disposition", "Backend Team", "Java", "", &domain.ApprovalEdge{Time: "assess"}, http.StatusBadRequest},
		{"unknown team", "Ghost Team", "Java", "", &domain.ApprovalEdge{Time: domain.DispositionInvest}, http.StatusNotFound},
		{"unknown technology", "Backend Team", "COBOL", "", &domain.ApprovalEdge{Time: domain.DispositionInvest}, http.StatusNotFound},
		{"unknown version", "Backend Team", "Java", "99", &domain.ApprovalEdge{Time: domain.DispositionInvest}, http.StatusNotFound},
		{"bad constraint", "Backend Team", "Java", "", &domain.ApprovalEdge{Time: domain.DispositionInvest, VersionConstraint: ">>nope"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()
			err := f.svc.UpsertApproval(context.Background(), tt.team, tt.technology, tt.version, tt.edge)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := apierr.Status(err); got != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %v", got, tt.wantStatus, err)
			}
			if len(f.events.messages) != 0 {
				t.Fatalf("rejected write must not publish events")
			}
		})
	}
}

func TestRemoveApproval(t *testing.T) {
	f := newCatalogFixture()
	f.approvals.technologyEdges = map[string]*domain.ApprovalEdge{
		"Backend Team|Java": {Time: domain.DispositionInvest},
	}
	if err := f.svc.RemoveApproval(context.Background(), "Backend Team", "Java"); err != nil {
		t.Fatalf("RemoveApproval: %v", err)
	}
	if f.approvals.technologyEdges["Backend Team|Java"] != nil {
		t.Fatalf("edge still present after removal")
	}
	if got := f.lastEvent(t).Event; got != sse.EventApprovalRemoved {
		t.Fatalf("event = %q, want %q", got, sse.EventApprovalRemoved)
	}
}

func TestRecordUsage(t *testing.T) {
	f := newCatalogFixture()
	if err := f.svc.RecordUsage(context.Background(), "Backend Team", "Java", 5, "", ""); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	if len(f.usage.edges) != 1 || f.usage.edges[0].SystemCount != 5 {
		t.Fatalf("usage edge not stored: %+v", f.usage.edges)
	}

	if err := f.svc.RecordUsage(context.Background(), "Backend Team", "Java", -1, "", ""); apierr.Status(err) != http.StatusBadRequest {
		t.Fatalf("negative systemCount must be rejected, got %v", err)
	}
}

func TestUpsertPolicyDefaultsAndValidation(t *testing.T) {
	f := newCatalogFixture()

	policy := &domain.Policy{Name: "no-eol-software", Severity: domain.SeverityCritical}
	if err := f.svc.UpsertPolicy(context.Background(), policy); err != nil {
		t.Fatalf("UpsertPolicy: %v", err)
	}
	if got := f.policies.policies["no-eol-software"].Status; got != domain.PolicyStatusActive {
		t.Fatalf("status = %q, want %q", got, domain.PolicyStatusActive)
	}

	bad := &domain.Policy{Name: "x", Severity: "blocker"}
	if err := f.svc.UpsertPolicy(context.Background(), bad); apierr.Status(err) != http.StatusBadRequest {
		t.Fatalf("unrecognized severity must be rejected, got %v", err)
	}
}

func TestUpsertTechnologyRejectsBadRange(t *testing.T) {
	f := newCatalogFixture()
	err := f.svc.UpsertTechnology(context.Background(), &domain.Technology{
		Name:                 "Node.js",
		ApprovedVersionRange: ">>nope",
	})
	if apierr.Status(err) != http.StatusBadRequest {
		t.Fatalf("invalid range must be rejected, got %v", err)
	}
}

func TestAttachGovernsChecksBothEnds(t *testing.T) {
	f := newCatalogFixture()
	f.policies.policies = map[string]*domain.Policy{
		"no-eol-software": {Name: "no-eol-software", Severity: domain.SeverityCritical, Status: domain.PolicyStatusActive},
	}

	if err := f.svc.AttachGoverns(context.Background(), "no-eol-software", "Java"); err != nil {
		t.Fatalf("AttachGoverns: %v", err)
	}
	if len(f.policies.governs) != 1 {
		t.Fatalf("governs edge not stored")
	}

	if err := f.svc.AttachGoverns(context.Background(), "ghost-policy", "Java"); apierr.Status(err) != http.StatusNotFound {
		t.Fatalf("unknown policy must 404, got %v", err)
	}
	if err := f.svc.AttachGoverns(context.Background(), "no-eol-software", "COBOL"); apierr.Status(err) != http.StatusNotFound {
		t.Fatalf("unknown technology must 404, got %v", err)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	f := newCatalogFixture()
	f.events.err = context.DeadlineExceeded
	if err := f.svc.UpsertTeam(context.Background(), &domain.Team{Name: "New Team"}); err != nil {
		t.Fatalf("UpsertTeam: %v", err)
	}
	if f.teams.teams["New Team"] == nil {
		t.Fatalf("team not stored")
	}
}

func TestTeamScopedEventsFanOutToTeamChannel(t *testing.T) {
	f := newCatalogFixture()
	if err := f.svc.RecordUsage(context.Background(), "Backend Team", "Java", 1, "", ""); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	channels := map[string]bool{}
	for _, m := range f.events.messages {
		channels[m.Channel] = true
	}
	if !channels[sse.ChannelCatalog] || !channels["team:Backend Team"] {
		t.Fatalf("expected catalog and team channels, got %v", channels)
	}
}
