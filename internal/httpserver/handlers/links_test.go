package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

func TestCreateLinkValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing name",
			body:        `{"link":"https://example.com","type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Name is required",
		},
		{
			name:        "invalid url",
			body:        `{"name":"Docs","link":"not a url","type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Link must be a valid URL",
		},
		{
			name:        "invalid workspace",
			body:        `{"name":"Docs","link":"https://example.com","type":"home"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Type must be either 'office' or 'personal'",
		},
		{
			name:        "malformed body",
			body:        `{{{`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "valid",
			body:        `{"name":"Docs","link":"https://example.com","category":"Tools","tags":["go","docs"],"type":"office"}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Link added successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDeps(newFakeStore())

			req := httptest.NewRequest(http.MethodPost, "/imp-links", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			CreateLink(d)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			_, msg, _ := decodeEnvelope(t, rec)
			if msg != tt.wantMessage {
				t.Errorf("message = %q, want %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestCreateLinkAcceptsCommaStringTags(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	body := `{"name":"Docs","link":"https://example.com","tags":"go, docs, go","type":"personal"}`
	req := httptest.NewRequest(http.MethodPost, "/imp-links", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateLink(d)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	_, _, data := decodeEnvelope(t, rec)
	var link domain.Link
	if err := json.Unmarshal(data, &link); err != nil {
		t.Fatalf("failed to decode link: %v", err)
	}
	if len(link.Tags) != 2 || link.Tags[0] != "go" || link.Tags[1] != "docs" {
		t.Errorf("tags = %v, want [go docs]", link.Tags)
	}
	if link.ID == "" {
		t.Error("created link has no id")
	}
}

func TestListLinksFiltersByWorkspace(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	for _, body := range []string{
		`{"name":"Office link","link":"https://a.example.com","type":"office"}`,
		`{"name":"Personal link","link":"https://b.example.com","type":"personal"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/imp-links", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateLink(d)(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %s", rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/imp-links?type=office", nil)
	rec := httptest.NewRecorder()
	ListLinks(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	_, _, data := decodeEnvelope(t, rec)
	var links []*domain.Link
	if err := json.Unmarshal(data, &links); err != nil {
		t.Fatalf("failed to decode links: %v", err)
	}
	if len(links) != 1 || links[0].Name != "Office link" {
		t.Errorf("got %d links, want exactly the office one", len(links))
	}

	// Bad workspace value
	req = httptest.NewRequest(http.MethodGet, "/imp-links?type=home", nil)
	rec = httptest.NewRecorder()
	ListLinks(d)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad type, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateLink(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	req := httptest.NewRequest(http.MethodPost, "/imp-links",
		strings.NewReader(`{"name":"Docs","link":"https://example.com","type":"office"}`))
	rec := httptest.NewRecorder()
	CreateLink(d)(rec, req)
	_, _, data := decodeEnvelope(t, rec)
	var created domain.Link
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("failed to decode created link: %v", err)
	}

	// Happy path
	req = httptest.NewRequest(http.MethodPut, "/imp-links/"+created.ID,
		strings.NewReader(`{"name":"Docs v2","link":"https://example.com/v2","type":"office"}`))
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	UpdateLink(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	_, msg, data := decodeEnvelope(t, rec)
	if msg != "Link updated successfully" {
		t.Errorf("message = %q", msg)
	}
	var updated domain.Link
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("failed to decode updated link: %v", err)
	}
	if updated.Name != "Docs v2" {
		t.Errorf("name = %q, want %q", updated.Name, "Docs v2")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must preserve createdAt")
	}

	// Workspace change rejected
	req = httptest.NewRequest(http.MethodPut, "/imp-links/"+created.ID,
		strings.NewReader(`{"name":"Docs","link":"https://example.com","type":"personal"}`))
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	UpdateLink(d)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for workspace change, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateLinkNotFound(t *testing.T) {
	d := testDeps(newFakeStore())

	req := httptest.NewRequest(http.MethodPut, "/imp-links/6a2f41a3-c54c-4d89-b84e-3f1c7a0f9a21",
		strings.NewReader(`{"name":"Docs","link":"https://example.com","type":"office"}`))
	req = withURLParam(req, "id", "6a2f41a3-c54c-4d89-b84e-3f1c7a0f9a21")
	rec := httptest.NewRecorder()
	UpdateLink(d)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	_, msg, _ := decodeEnvelope(t, rec)
	if msg != "Link not found" {
		t.Errorf("message = %q, want %q", msg, "Link not found")
	}
}

func TestDeleteLink(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	req := httptest.NewRequest(http.MethodPost, "/imp-links",
		strings.NewReader(`{"name":"Docs","link":"https://example.com","type":"office"}`))
	rec := httptest.NewRecorder()
	CreateLink(d)(rec, req)
	_, _, data := decodeEnvelope(t, rec)
	var created domain.Link
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("failed to decode created link: %v", err)
	}

	// Bad id format
	req = httptest.NewRequest(http.MethodDelete, "/imp-links/nope", nil)
	req = withURLParam(req, "id", "nope")
	rec = httptest.NewRecorder()
	DeleteLink(d)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad id, want %d", rec.Code, http.StatusBadRequest)
	}
	_, msg, _ := decodeEnvelope(t, rec)
	if msg != "Invalid ID format" {
		t.Errorf("message = %q, want %q", msg, "Invalid ID format")
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/imp-links/"+created.ID, nil)
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	DeleteLink(d)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Second delete is a 404
	req = httptest.NewRequest(http.MethodDelete, "/imp-links/"+created.ID, nil)
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	DeleteLink(d)(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d on second delete, want %d", rec.Code, http.StatusNotFound)
	}
}
