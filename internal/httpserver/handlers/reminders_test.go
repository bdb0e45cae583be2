package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

func TestCreateReminderValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing task",
			body:        `{"timeOfDay":"09:00","type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Task is required",
		},
		{
			name:        "bad time format",
			body:        `{"task":"Standup","timeOfDay":"9am","type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "timeOfDay must be in HH:MM format (24h)",
		},
		{
			name:        "out of range time",
			body:        `{"task":"Standup","timeOfDay":"25:00","type":"office"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "timeOfDay must be in HH:MM format (24h)",
		},
		{
			name:        "bad repeat",
			body:        `{"task":"Standup","timeOfDay":"09:00","type":"office","repeat":"hourly"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Repeat must be one of 'daily', 'weekday' or 'weekend'",
		},
		{
			name:        "valid",
			body:        `{"task":"Standup","timeOfDay":"09:00","type":"office"}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Reminder added successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDeps(newFakeStore())

			req := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			CreateReminder(d)(rec, req)

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

func TestCreateReminderDefaults(t *testing.T) {
	d := testDeps(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/reminders",
		strings.NewReader(`{"task":"Standup","timeOfDay":"09:00","type":"office"}`))
	rec := httptest.NewRecorder()
	CreateReminder(d)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	_, _, data := decodeEnvelope(t, rec)
	var reminder domain.Reminder
	if err := json.Unmarshal(data, &reminder); err != nil {
		t.Fatalf("failed to decode reminder: %v", err)
	}
	if !reminder.IsActive {
		t.Error("new reminder should default to active")
	}
	if reminder.Repeat != domain.RepeatDaily {
		t.Errorf("repeat = %q, want daily", reminder.Repeat)
	}
	if reminder.LastDoneDate != nil {
		t.Error("new reminder should have no done date")
	}

	// Mutation must poke the notifier trigger.
	select {
	case <-d.NotifyTrigger:
	default:
		t.Error("create did not poke the notifier")
	}
}

func TestMarkReminderDone(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	req := httptest.NewRequest(http.MethodPost, "/reminders",
		strings.NewReader(`{"task":"Standup","timeOfDay":"09:00","type":"office"}`))
	rec := httptest.NewRecorder()
	CreateReminder(d)(rec, req)
	_, _, data := decodeEnvelope(t, rec)
	var created domain.Reminder
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("failed to decode created reminder: %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/reminders/"+created.ID+"/done", nil)
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	MarkReminderDone(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	_, msg, data := decodeEnvelope(t, rec)
	if msg != "Reminder marked as done" {
		t.Errorf("message = %q", msg)
	}
	var done domain.Reminder
	if err := json.Unmarshal(data, &done); err != nil {
		t.Fatalf("failed to decode reminder: %v", err)
	}
	if done.LastDoneDate == nil || !domain.SameDay(*done.LastDoneDate, time.Now()) {
		t.Error("done date should be set to today")
	}

	// Unknown id
	req = httptest.NewRequest(http.MethodPatch, "/reminders/6a2f41a3-c54c-4d89-b84e-3f1c7a0f9a21/done", nil)
	req = withURLParam(req, "id", "6a2f41a3-c54c-4d89-b84e-3f1c7a0f9a21")
	rec = httptest.NewRecorder()
	MarkReminderDone(d)(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d for unknown id, want %d", rec.Code, http.StatusNotFound)
	}
	_, msg, _ = decodeEnvelope(t, rec)
	if msg != "Reminder not found" {
		t.Errorf("message = %q, want %q", msg, "Reminder not found")
	}
}

func TestUpdateReminderPreservesDoneHistory(t *testing.T) {
	fs := newFakeStore()
	d := testDeps(fs)

	req := httptest.NewRequest(http.MethodPost, "/reminders",
		strings.NewReader(`{"task":"Standup","timeOfDay":"09:00","type":"office"}`))
	rec := httptest.NewRecorder()
	CreateReminder(d)(rec, req)
	_, _, data := decodeEnvelope(t, rec)
	var created domain.Reminder
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("failed to decode created reminder: %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/reminders/"+created.ID+"/done", nil)
	req = withURLParam(req, "id", created.ID)
	MarkReminderDone(d)(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPut, "/reminders/"+created.ID,
		strings.NewReader(`{"task":"Standup (moved)","timeOfDay":"10:00","type":"office"}`))
	req = withURLParam(req, "id", created.ID)
	rec = httptest.NewRecorder()
	UpdateReminder(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	_, _, data = decodeEnvelope(t, rec)
	var updated domain.Reminder
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("failed to decode updated reminder: %v", err)
	}
	if updated.TimeOfDay != "10:00" {
		t.Errorf("timeOfDay = %q, want 10:00", updated.TimeOfDay)
	}
	if updated.LastDoneDate == nil {
		t.Error("update must preserve the done history")
	}
}

func TestDueReminders(t *testing.T) {
	d := testDeps(newFakeStore())
	now := time.Date(2025, 3, 10, 8, 45, 0, 0, time.Local)
	d.TimeNow = func() time.Time { return now }

	yesterday := now.AddDate(0, 0, -1)
	d.MemoryIndex.UpdateReminders([]*domain.Reminder{
		{ID: "due", Task: "Standup", TimeOfDay: "09:00", IsActive: true},
		{ID: "passed", Task: "Earlier", TimeOfDay: "08:00", IsActive: true},
		{ID: "inactive", Task: "Paused", TimeOfDay: "09:00", IsActive: false},
		{ID: "done-yesterday", Task: "Daily", TimeOfDay: "09:00", IsActive: true, LastDoneDate: &yesterday},
	})

	req := httptest.NewRequest(http.MethodGet, "/reminders/due", nil)
	rec := httptest.NewRecorder()
	DueReminders(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	_, _, data := decodeEnvelope(t, rec)
	var due []*domain.Reminder
	if err := json.Unmarshal(data, &due); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}

	ids := make(map[string]bool, len(due))
	for _, r := range due {
		ids[r.ID] = true
	}
	if len(due) != 2 || !ids["due"] || !ids["done-yesterday"] {
		t.Errorf("due ids = %v, want [due done-yesterday]", ids)
	}
}
