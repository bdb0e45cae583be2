package handlers

import (
	"net/http"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

type loginPayload struct {
	Workspace string `json:"type" validate:"required,oneof=office personal"`
	Secret    string `json:"secret" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Workspace string    `json:"workspace"`
}

// Login verifies a workspace secret and issues a session token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validatePayload(&payload); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		workspace, err := domain.ParseWorkspace(payload.Workspace)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Type must be either 'office' or 'personal'")
			return
		}

		if !d.Credentials.Verify(workspace, payload.Secret) {
			d.Logger.Warn("login rejected",
				logger.String("workspace", workspace.String()),
				logger.String("remote_ip", r.RemoteAddr))
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, expiresAt, err := d.Sessions.Issue(workspace)
		if err != nil {
			d.Logger.Error("failed to issue session token", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.Logger.Info("login succeeded", logger.String("workspace", workspace.String()))
		respondData(w, http.StatusOK, loginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			Workspace: workspace.String(),
		})
	}
}
