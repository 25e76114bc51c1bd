package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
)

func newUsageFixture(edges []domain.UsageEdge) UsageService {
	teams := &fakeTeamRepo{teams: map[string]*domain.Team{
		"Backend Team": {Name: "Backend Team"},
	}}
	return NewUsageService(logger.NewNop(), teams, &fakeUsageRepo{edges: edges})
}

func TestSummarizeClassifiesEachRow(t *testing.T) {
	svc := newUsageFixture([]domain.UsageEdge{
		{Team: "Backend Team", Technology: "Java", SystemCount: 5, HasApproval: true, ApprovalTime: domain.DispositionInvest},
		{Team: "Backend Team", Technology: "Redis", SystemCount: 3, HasApproval: true, ApprovalTime: domain.DispositionTolerate},
		{Team: "Backend Team", Technology: "AngularJS", SystemCount: 2, HasApproval: true, ApprovalTime: domain.DispositionMigrate},
		{Team: "Backend Team", Technology: "Flash", SystemCount: 1, HasApproval: true, ApprovalTime: domain.DispositionEliminate},
		{Team: "Backend Team", Technology: "Deno", SystemCount: 1},
		{Team: "Backend Team", Technology: "Zig", SystemCount: 1, HasApproval: true, ApprovalTime: "assess"},
	})

	summary, err := svc.Summarize(context.Background(), "Backend Team")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	wantStatus := map[string]domain.ComplianceStatus{
		"Java":      domain.ComplianceCompliant,
		"Redis":     domain.ComplianceCompliant,
		"AngularJS": domain.ComplianceMigrationNeeded,
		"Flash":     domain.ComplianceViolation,
		"Deno":      domain.ComplianceUnapproved,
		"Zig":       domain.ComplianceUnknown,
	}
	for _, row := range summary.Usage {
		if got := wantStatus[row.Technology]; row.ComplianceStatus != got {
			t.Fatalf("%s: status = %q, want %q", row.Technology, row.ComplianceStatus, got)
		}
	}

	counts := summary.Summary
	if counts.TotalTechnologies != 6 {
		t.Fatalf("total = %d, want 6", counts.TotalTechnologies)
	}
	if counts.Compliant != 2 || counts.MigrationNeeded != 1 || counts.Violations != 1 || counts.Unapproved != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	// The unknown row is in the total but in no named bucket.
	if sum := counts.Compliant + counts.MigrationNeeded + counts.Violations + counts.Unapproved; sum != 5 {
		t.Fatalf("bucketed rows = %d, want 5", sum)
	}
}

func TestSummarizeOmitsDispositionWithoutApproval(t *testing.T) {
	svc := newUsageFixture([]domain.UsageEdge{
		{Team: "Backend Team", Technology: "Deno", SystemCount: 1},
	})
	summary, err := svc.Summarize(context.Background(), "Backend Team")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Usage[0].Disposition != "" {
		t.Fatalf("disposition = %q, want empty", summary.Usage[0].Disposition)
	}
}

func TestSummarizeSortsBySystemCountDescending(t *testing.T) {
	svc := newUsageFixture([]domain.UsageEdge{
		{Team: "Backend Team", Technology: "Go", SystemCount: 2},
		{Team: "Backend Team", Technology: "Java", SystemCount: 7},
		{Team: "Backend Team", Technology: "Kafka", SystemCount: 2},
		{Team: "Backend Team", Technology: "Ansible", SystemCount: 2},
	})
	summary, err := svc.Summarize(context.Background(), "Backend Team")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	wantOrder := []string{"Java", "Ansible", "Go", "Kafka"}
	for i, want := range wantOrder {
		if summary.Usage[i].Technology != want {
			t.Fatalf("usage[%d] = %q, want %q", i, summary.Usage[i].Technology, want)
		}
	}
}

func TestSummarizeEmptyUsage(t *testing.T) {
	svc := newUsageFixture(nil)
	summary, err := svc.Summarize(context.Background(), "Backend Team")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Usage == nil {
		t.Fatalf("usage must be an empty slice, not nil")
	}
	if summary.Summary.TotalTechnologies != 0 {
		t.Fatalf("total = %d, want 0", summary.Summary.TotalTechnologies)
	}
}

func TestSummarizeValidation(t *testing.T) {
	svc := newUsageFixture(nil)

	if _, err := svc.Summarize(context.Background(), "  "); apierr.Status(err) != http.StatusBadRequest {
		t.Fatalf("blank team: status = %d, want 400", apierr.Status(err))
	}
	if _, err := svc.Summarize(context.Background(), "Ghost Team"); apierr.Status(err) != http.StatusNotFound {
		t.Fatalf("unknown team: status = %d, want 404", apierr.Status(err))
	}
}
