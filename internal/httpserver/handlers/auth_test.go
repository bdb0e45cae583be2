package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/auth"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
)

func authDeps() deps.Deps {
	d := testDeps(newFakeStore())
	d.Sessions = auth.NewSessionManager("test-secret", time.Hour)
	d.Credentials = auth.NewStaticCredentials(map[domain.Workspace]string{
		domain.WorkspaceOffice:   "office123",
		domain.WorkspacePersonal: "personal123",
	})
	return d
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid office login",
			body:       `{"type":"office","secret":"office123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:        "wrong secret",
			body:        `{"type":"office","secret":"personal123"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "missing secret",
			body:        `{"type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Secret is required",
		},
		{
			name:        "bad workspace",
			body:        `{"type":"home","secret":"office123"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Type must be either 'office' or 'personal'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := authDeps()

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			Login(d)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			_, msg, _ := decodeEnvelope(t, rec)
			if tt.wantMessage != "" && msg != tt.wantMessage {
				t.Errorf("message = %q, want %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	d := authDeps()

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"type":"personal","secret":"personal123"}`))
	rec := httptest.NewRecorder()
	Login(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	_, _, data := decodeEnvelope(t, rec)
	var resp struct {
		Token     string `json:"token"`
		Workspace string `json:"workspace"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Workspace != "personal" {
		t.Errorf("workspace = %q, want personal", resp.Workspace)
	}

	s, err := d.Sessions.Parse(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if s.Workspace != domain.WorkspacePersonal {
		t.Errorf("token workspace = %v, want personal", s.Workspace)
	}
}
