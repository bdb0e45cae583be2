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

type reminderPayload struct {
	Task      string `json:"task" validate:"required"`
	TimeOfDay string `json:"timeOfDay" validate:"required"`
	Workspace string `json:"type" validate:"required,oneof=office personal"`
	Repeat    string `json:"repeat"`
	IsActive  *bool  `json:"isActive"`
}

// ListReminders returns all reminders, oldest first, optionally scoped to
// a workspace.
func ListReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace, err := workspaceFilter(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Type must be either 'office' or 'personal'")
			return
		}

		reminders, err := d.Reminders.ListReminders(r.Context(), workspace)
		if err != nil {
			d.Logger.Error("failed to list reminders", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondData(w, http.StatusOK, reminders)
	}
}

// DueReminders returns the active reminders currently inside their notify
// window and not yet done today, evaluated against the in-memory snapshot.
func DueReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace, err := workspaceFilter(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Type must be either 'office' or 'personal'")
			return
		}

		now := d.Now()
		due := make([]*domain.Reminder, 0)
		for _, rem := range d.MemoryIndex.GetAllReminders() {
			if !rem.IsActive {
				continue
			}
			if workspace != "" && rem.Workspace != workspace {
				continue
			}
			if rem.ShouldNotify(now, d.NotifyWindow) {
				due = append(due, rem)
			}
		}
		respondData(w, http.StatusOK, due)
	}
}

// CreateReminder stores a new reminder and pokes the notifier so it is
// evaluated without waiting for the next tick.
func CreateReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reminderPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		reminder, errMsg := reminderFromPayload(&payload)
		if errMsg != "" {
			respondError(w, http.StatusBadRequest, errMsg)
			return
		}

		now := d.Now()
		reminder.ID = uuid.NewString()
		reminder.CreatedAt = now
		reminder.UpdatedAt = now

		if err := d.Reminders.SaveReminder(r.Context(), reminder); err != nil {
			d.Logger.Error("failed to save reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.PokeNotifier()
		d.Logger.Info("reminder created",
			logger.String("reminder_id", reminder.ID),
			logger.String("time_of_day", reminder.TimeOfDay))
		respondMessage(w, http.StatusCreated, "Reminder added successfully", reminder)
	}
}

// UpdateReminder replaces an existing reminder's fields, preserving its
// done history.
func UpdateReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateID(id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		existing, err := d.Reminders.GetReminder(r.Context(), id)
		if err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Reminder not found")
				return
			}
			d.Logger.Error("failed to get reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		var payload reminderPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		// The update body may omit the workspace; it never changes anyway.
		if payload.Workspace == "" {
			payload.Workspace = existing.Workspace.String()
		}

		reminder, errMsg := reminderFromPayload(&payload)
		if errMsg != "" {
			respondError(w, http.StatusBadRequest, errMsg)
			return
		}
		if reminder.Workspace != existing.Workspace {
			respondError(w, http.StatusBadRequest, "Reminder workspace cannot be changed")
			return
		}

		reminder.ID = existing.ID
		reminder.CreatedAt = existing.CreatedAt
		reminder.LastDoneDate = existing.LastDoneDate
		reminder.UpdatedAt = d.Now()

		if err := d.Reminders.SaveReminder(r.Context(), reminder); err != nil {
			d.Logger.Error("failed to save reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.PokeNotifier()
		respondMessage(w, http.StatusOK, "Reminder updated successfully", reminder)
	}
}

// MarkReminderDone records that the reminder was completed today,
// suppressing further notifications until tomorrow.
func MarkReminderDone(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateID(id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		reminder, err := d.Reminders.GetReminder(r.Context(), id)
		if err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Reminder not found")
				return
			}
			d.Logger.Error("failed to get reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		now := d.Now()
		reminder.LastDoneDate = &now
		reminder.UpdatedAt = now

		if err := d.Reminders.SaveReminder(r.Context(), reminder); err != nil {
			d.Logger.Error("failed to save reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.PokeNotifier()
		d.Logger.Info("reminder marked done", logger.String("reminder_id", id))
		respondMessage(w, http.StatusOK, "Reminder marked as done", reminder)
	}
}

// DeleteReminder removes a reminder.
func DeleteReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateID(id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Reminders.DeleteReminder(r.Context(), id); err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Reminder not found")
				return
			}
			d.Logger.Error("failed to delete reminder", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		d.PokeNotifier()
		d.Logger.Info("reminder deleted", logger.String("reminder_id", id))
		respondMessage(w, http.StatusOK, "Reminder deleted successfully", nil)
	}
}

// reminderFromPayload validates the payload and builds a reminder from it.
// Returns a user-facing message on validation failure.
func reminderFromPayload(payload *reminderPayload) (*domain.Reminder, string) {
	payload.Task = strings.TrimSpace(payload.Task)

	if err := validatePayload(payload); err != nil {
		return nil, err.Error()
	}
	if _, _, err := domain.ParseTimeOfDay(payload.TimeOfDay); err != nil {
		return nil, "timeOfDay must be in HH:MM format (24h)"
	}

	workspace, err := domain.ParseWorkspace(payload.Workspace)
	if err != nil {
		return nil, "Type must be either 'office' or 'personal'"
	}

	repeat := domain.Repeat(payload.Repeat)
	if payload.Repeat == "" {
		repeat = domain.RepeatDaily
	} else if !repeat.Valid() {
		return nil, "Repeat must be one of 'daily', 'weekday' or 'weekend'"
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	return &domain.Reminder{
		Task:      payload.Task,
		TimeOfDay: payload.TimeOfDay,
		Workspace: workspace,
		Repeat:    repeat,
		IsActive:  isActive,
	}, ""
}
