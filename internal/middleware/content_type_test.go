package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/mesto/internal/apperror"
)

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantCalled  bool
	}{
		{"json", `{}`, "application/json", true},
		{"json with charset", `{}`, "Application/JSON; charset=utf-8", true},
		{"no body", "", "text/plain", true},
		{"plain text", "hello", "text/plain", false},
		{"form", "a=b", "application/x-www-form-urlencoded", false},
		{"missing header", `{}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			RequireJSON(apperror.NewResponder(nil))(dummy).ServeHTTP(rec, req)

			if dummy.called != tt.wantCalled {
				t.Fatalf("next called = %v; want %v", dummy.called, tt.wantCalled)
			}
			if tt.wantCalled {
				return
			}
			if rec.Code != http.StatusUnsupportedMediaType {
				t.Errorf("status = %d; want 415", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q; want application/json", ct)
			}
			if !strings.Contains(rec.Body.String(), MsgUnsupportedMediaType) {
				t.Errorf("unexpected body %q", rec.Body.String())
			}
		})
	}
}
