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

type stubApprovalService struct {
	result *domain.ResolvedApproval
	err    error
}

func (s *stubApprovalService) Resolve(_ context.Context, team, technology, version string) (*domain.ResolvedApproval, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func approvalRouter(svc *stubApprovalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewApprovalHandler(logger.NewNop(), svc)
	r.GET("/api/approvals/resolve", h.Resolve)
	return r
}

func TestApprovalResolveSuccess(t *testing.T) {
	stub := &stubApprovalService{result: &domain.ResolvedApproval{
		Team:       "Backend Team",
		Technology: "Java",
		Approval: domain.Approval{
			Level: domain.ApprovalLevelTechnology,
			Time:  domain.DispositionInvest,
		},
	}}
	r := approvalRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/approvals/resolve?team=Backend%20Team&technology=Java", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Success bool                    `json:"success"`
		Data    domain.ResolvedApproval `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatalf("success = false")
	}
	if body.Data.Approval.Level != domain.ApprovalLevelTechnology {
		t.Fatalf("level = %q", body.Data.Approval.Level)
	}
}

func TestApprovalResolveErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apierr.NotFound("team %q not found", "Ghost Team"), http.StatusNotFound, apierr.CodeNotFound},
		{"invalid argument", apierr.InvalidArgument("team is required"), http.StatusBadRequest, apierr.CodeInvalidArgument},
		{"store down", apierr.StoreUnavailable("match team", context.DeadlineExceeded), http.StatusServiceUnavailable, apierr.CodeStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := approvalRouter(&stubApprovalService{err: tt.err})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/approvals/resolve?team=x&technology=y", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body struct {
				Success bool     `json:"success"`
				Error   APIError `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Fatalf("success = true on error")
			}
			if body.Error.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}
