package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
)

type stubUsageService struct {
	summary *domain.UsageSummary
	err     error
	team    string
}

func (s *stubUsageService) Summarize(_ context.Context, team string) (*domain.UsageSummary, error) {
	s.team = team
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func usageRouter(svc *stubUsageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUsageHandler(logger.NewNop(), svc)
	r.GET("/api/teams/:name/usage", h.Summary)
	return r
}

func TestUsageSummarySuccess(t *testing.T) {
	stub := &stubUsageService{summary: &domain.UsageSummary{
		Team: "Backend Team",
		Usage: []domain.UsageRow{{
			Technology:       "Java",
			SystemCount:      5,
			Disposition:      domain.DispositionInvest,
			ComplianceStatus: domain.ComplianceCompliant,
		}},
		Summary: domain.UsageCounts{TotalTechnologies: 1, Compliant: 1},
	}}
	r := usageRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/teams/Backend%20Team/usage", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.team != "Backend Team" {
		t.Fatalf("team param = %q", stub.team)
	}
	var body struct {
		Success bool                `json:"success"`
		Data    domain.UsageSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data.Summary.Compliant != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestUsageSummaryFailsLoudly(t *testing.T) {
	// Unlike the violations surface there is no graceful degrade here.
	stub := &stubUsageService{err: apierr.StoreUnavailable("match usage", context.DeadlineExceeded)}
	r := usageRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/teams/Backend%20Team/usage", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestUsageSummaryUnknownTeam(t *testing.T) {
	stub := &stubUsageService{err: apierr.NotFound("team %q not found", "Ghost Team")}
	r := usageRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/teams/Ghost%20Team/usage", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
