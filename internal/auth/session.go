package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// Session is the authenticated state carried through request contexts.
// Replaces the ambient "isAuthenticated" flag the old frontend kept in
// local storage.
type Session struct {
	Workspace domain.Workspace
}

type sessionClaims struct {
	Workspace string `json:"workspace"`
	jwt.RegisteredClaims
}

// SessionManager issues and parses signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a session manager signing with secret;
// tokens expire after ttl.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the workspace.
func (m *SessionManager) Issue(workspace domain.Workspace) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(m.ttl)

	claims := &sessionClaims{
		Workspace: workspace.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse validates a token and returns its session.
func (m *SessionManager) Parse(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	workspace, err := domain.ParseWorkspace(claims.Workspace)
	if err != nil {
		return nil, fmt.Errorf("session token carries unknown workspace: %w", err)
	}

	return &Session{Workspace: workspace}, nil
}

type contextKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFrom returns the session attached to the context, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
