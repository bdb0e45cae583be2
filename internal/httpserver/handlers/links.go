package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
	redisstore "github.com/Aditya-Goel-Compro/imp-link-manager/internal/store/redis"
)

type linkPayload struct {
	Name        string           `json:"name" validate:"required"`
	URL         string           `json:"link" validate:"required"`
	Category    string           `json:"category"`
	Tags        domain.TagsInput `json:"tags"`
	Description string           `json:"description"`
	Workspace   string           `json:"type" validate:"required,oneof=office personal"`
}

// ListLinks returns all links, newest first, optionally scoped to a workspace.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace, err := workspaceFilter(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Type must be either 'office' or 'personal'")
			return
		}

		links, err := d.Links.ListLinks(r.Context(), workspace)
		if err != nil {
			d.Logger.Error("failed to list links", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondData(w, http.StatusOK, links)
	}
}

// CreateLink stores a new link in the payload's workspace.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload linkPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		link, errMsg := linkFromPayload(&payload)
		if errMsg != "" {
			respondError(w, http.StatusBadRequest, errMsg)
			return
		}

		now := d.Now()
		link.ID = uuid.NewString()
		link.CreatedAt = now
		link.UpdatedAt = now

		if err := d.Links.SaveLink(r.Context(), link); err != nil {
			d.Logger.Error("failed to save link", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.Logger.Info("link created",
			logger.String("link_id", link.ID),
			logger.String("workspace", link.Workspace.String()))
		respondMessage(w, http.StatusCreated, "Link added successfully", link)
	}
}

// UpdateLink replaces an existing link's fields. The workspace a link was
// created in never changes.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateID(id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		existing, err := d.Links.GetLink(r.Context(), id)
		if err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Link not found")
				return
			}
			d.Logger.Error("failed to get link", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		var payload linkPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		link, errMsg := linkFromPayload(&payload)
		if errMsg != "" {
			respondError(w, http.StatusBadRequest, errMsg)
			return
		}
		if link.Workspace != existing.Workspace {
			respondError(w, http.StatusBadRequest, "Link workspace cannot be changed")
			return
		}

		link.ID = existing.ID
		link.CreatedAt = existing.CreatedAt
		link.UpdatedAt = d.Now()

		if err := d.Links.SaveLink(r.Context(), link); err != nil {
			d.Logger.Error("failed to save link", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondMessage(w, http.StatusOK, "Link updated successfully", link)
	}
}

// DeleteLink removes a link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateID(id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Links.DeleteLink(r.Context(), id); err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Link not found")
				return
			}
			d.Logger.Error("failed to delete link", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.Logger.Info("link deleted", logger.String("link_id", id))
		respondMessage(w, http.StatusOK, "Link deleted successfully", nil)
	}
}

// linkFromPayload validates the payload and builds a link from it.
// Returns a user-facing message on validation failure.
func linkFromPayload(payload *linkPayload) (*domain.Link, string) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.URL = strings.TrimSpace(payload.URL)

	if err := validatePayload(payload); err != nil {
		return nil, err.Error()
	}
	if err := domain.ValidateURL(payload.URL); err != nil {
		return nil, "Link must be a valid URL"
	}

	workspace, err := domain.ParseWorkspace(payload.Workspace)
	if err != nil {
		return nil, "Type must be either 'office' or 'personal'"
	}

	return &domain.Link{
		Name:        payload.Name,
		URL:         payload.URL,
		Category:    strings.TrimSpace(payload.Category),
		Tags:        payload.Tags.Normalize(),
		Description: strings.TrimSpace(payload.Description),
		Workspace:   workspace,
	}, ""
}
