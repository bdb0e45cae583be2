package mw

import (
	"net/http"
	"strings"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/auth"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

// Session validates the Bearer token on protected routes and attaches the
// resulting session to the request context. When required is false,
// requests without a token pass through unauthenticated (local setups).
// A token that is present but invalid is always rejected.
func Session(sessions *auth.SessionManager, required bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if required {
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			s, err := sessions.Parse(token)
			if err != nil {
				log.Debug("rejected session token", logger.Error(err))
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
}
