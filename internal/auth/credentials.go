package auth

import (
	"crypto/subtle"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// Verifier checks a workspace secret. Injected everywhere a credential
// check is needed so real secret management can be swapped in without
// touching call sites.
type Verifier interface {
	Verify(workspace domain.Workspace, secret string) bool
}

type credentialsFile struct {
	Workspaces map[string]string `yaml:"workspaces"`
}

// FileCredentials is a Verifier backed by a YAML file mapping each
// workspace to its shared secret:
//
//	workspaces:
//	  office: "..."
//	  personal: "..."
type FileCredentials struct {
	secrets map[domain.Workspace]string
}

// LoadCredentials reads and validates the credentials file.
func LoadCredentials(path string) (*FileCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var file credentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	secrets := make(map[domain.Workspace]string, len(file.Workspaces))
	for raw, secret := range file.Workspaces {
		ws, err := domain.ParseWorkspace(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace in credentials file: %w", err)
		}
		if secret == "" {
			return nil, fmt.Errorf("empty secret for workspace %q", raw)
		}
		secrets[ws] = secret
	}

	for _, ws := range []domain.Workspace{domain.WorkspaceOffice, domain.WorkspacePersonal} {
		if _, ok := secrets[ws]; !ok {
			return nil, fmt.Errorf("credentials file missing workspace %q", ws)
		}
	}

	return &FileCredentials{secrets: secrets}, nil
}

// NewStaticCredentials builds a Verifier from an in-memory map.
func NewStaticCredentials(secrets map[domain.Workspace]string) *FileCredentials {
	return &FileCredentials{secrets: secrets}
}

// Verify reports whether secret matches the workspace's configured
// secret, in constant time.
func (f *FileCredentials) Verify(workspace domain.Workspace, secret string) bool {
	want, ok := f.secrets[workspace]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(secret)) == 1
}
