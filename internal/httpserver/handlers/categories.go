package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required"`
}

// ListCategories returns all categories sorted by name. Categories are
// shared across workspaces.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := d.Categories.ListCategories(r.Context())
		if err != nil {
			d.Logger.Error("failed to list categories", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondData(w, http.StatusOK, cats)
	}
}

// CreateCategory creates a category by trimmed name. Creating a name that
// already exists returns the existing record with 200 instead of 201.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		payload.Name = strings.TrimSpace(payload.Name)
		if err := validatePayload(&payload); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		now := d.Now()
		cat := &domain.Category{
			ID:        uuid.NewString(),
			Name:      payload.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result, created, err := d.Categories.EnsureCategory(r.Context(), cat)
		if err != nil {
			d.Logger.Error("failed to create category", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !created {
			respondMessage(w, http.StatusOK, "Category already exists", result)
			return
		}

		d.Logger.Info("category created",
			logger.String("category_id", result.ID),
			logger.String("name", result.Name))
		respondMessage(w, http.StatusCreated, "Category added successfully", result)
	}
}
