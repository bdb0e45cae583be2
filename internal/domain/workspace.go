package domain

import "fmt"

// Workspace selects one of the two isolated link/reminder collections.
// Every link and reminder belongs to exactly one workspace, chosen at login.
type Workspace string

const (
	WorkspaceOffice   Workspace = "office"
	WorkspacePersonal Workspace = "personal"
)

// Valid reports whether w is one of the two known workspaces.
func (w Workspace) Valid() bool {
	return w == WorkspaceOffice || w == WorkspacePersonal
}

func (w Workspace) String() string { return string(w) }

// ParseWorkspace validates a raw workspace value (typically from a query
// parameter or request body).
func ParseWorkspace(s string) (Workspace, error) {
	w := Workspace(s)
	if !w.Valid() {
		return "", fmt.Errorf("workspace must be either 'office' or 'personal', got %q", s)
	}
	return w, nil
}
