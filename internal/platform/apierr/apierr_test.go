package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", NotFound("team %q not found", "x"), http.StatusNotFound, CodeNotFound},
		{"invalid argument", InvalidArgument("team is required"), http.StatusBadRequest, CodeInvalidArgument},
		{"store unavailable", StoreUnavailable("list teams", errors.New("refused")), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
		{"nil-ish wrapped", fmt.Errorf("outer: %w", NotFound("inner")), http.StatusNotFound, CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("Status = %d, want %d", got, tt.wantStatus)
			}
			if got := Code(tt.err); got != tt.wantCode {
				t.Fatalf("Code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestStoreUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreUnavailable("match usage", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost from chain")
	}
	if err.Error() != "match usage: connection refused" {
		t.Fatalf("message = %q", err.Error())
	}
}
