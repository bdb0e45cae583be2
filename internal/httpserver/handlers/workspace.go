package handlers

import (
	"net/http"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/auth"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// workspaceFilter resolves the workspace scope for list endpoints.
// Priority: explicit ?type= query parameter, then the session's workspace,
// then no filter (all workspaces). An invalid query value is an error.
func workspaceFilter(r *http.Request) (domain.Workspace, error) {
	if raw := r.URL.Query().Get("type"); raw != "" {
		return domain.ParseWorkspace(raw)
	}
	if s, ok := auth.SessionFrom(r.Context()); ok {
		return s.Workspace, nil
	}
	return "", nil
}
