package domain

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.Local)
}

func TestShouldNotify(t *testing.T) {
	doneToday := at(8, 50)
	doneYesterday := doneToday.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		reminder Reminder
		now      time.Time
		want     bool
	}{
		{
			name:     "inside window",
			reminder: Reminder{TimeOfDay: "09:00"},
			now:      at(8, 45),
			want:     true,
		},
		{
			name:     "exactly at scheduled time",
			reminder: Reminder{TimeOfDay: "09:00"},
			now:      at(9, 0),
			want:     true,
		},
		{
			name:     "just outside window",
			reminder: Reminder{TimeOfDay: "09:00"},
			now:      at(8, 29),
			want:     false,
		},
		{
			name:     "window boundary",
			reminder: Reminder{TimeOfDay: "09:00"},
			now:      at(8, 30),
			want:     true,
		},
		{
			name:     "time already passed, window never wraps",
			reminder: Reminder{TimeOfDay: "09:00"},
			now:      at(9, 1),
			want:     false,
		},
		{
			name:     "done today suppresses",
			reminder: Reminder{TimeOfDay: "09:00", LastDoneDate: &doneToday},
			now:      at(8, 55),
			want:     false,
		},
		{
			name:     "done yesterday does not suppress",
			reminder: Reminder{TimeOfDay: "09:00", LastDoneDate: &doneYesterday},
			now:      at(8, 45),
			want:     true,
		},
		{
			name:     "missing timeOfDay",
			reminder: Reminder{},
			now:      at(8, 45),
			want:     false,
		},
		{
			name:     "malformed timeOfDay",
			reminder: Reminder{TimeOfDay: "9am"},
			now:      at(8, 45),
			want:     false,
		},
		{
			name:     "out of range timeOfDay",
			reminder: Reminder{TimeOfDay: "25:00"},
			now:      at(8, 45),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.reminder.ShouldNotify(tt.now, DefaultNotifyWindow)
			if got != tt.want {
				t.Errorf("ShouldNotify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldNotifyAcrossDays(t *testing.T) {
	// Done today suppresses for the rest of the day, but the same
	// reminder fires again the next day inside the window.
	done := at(8, 50)
	r := Reminder{TimeOfDay: "09:00", LastDoneDate: &done}

	if r.ShouldNotify(at(8, 55), DefaultNotifyWindow) {
		t.Error("ShouldNotify() = true right after mark-done, want false")
	}

	nextDay := at(8, 45).AddDate(0, 0, 1)
	if !r.ShouldNotify(nextDay, DefaultNotifyWindow) {
		t.Error("ShouldNotify() = false on next day inside window, want true")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{input: "09:30", hour: 9, minute: 30},
		{input: "00:00", hour: 0, minute: 0},
		{input: "23:59", hour: 23, minute: 59},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "9:30", wantErr: true},
		{input: "", wantErr: true},
		{input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && (h != tt.hour || m != tt.minute) {
				t.Errorf("ParseTimeOfDay(%q) = %d:%d, want %d:%d", tt.input, h, m, tt.hour, tt.minute)
			}
		})
	}
}

func TestParseWorkspace(t *testing.T) {
	if _, err := ParseWorkspace("office"); err != nil {
		t.Errorf("ParseWorkspace(office) error = %v", err)
	}
	if _, err := ParseWorkspace("personal"); err != nil {
		t.Errorf("ParseWorkspace(personal) error = %v", err)
	}
	if _, err := ParseWorkspace("home"); err == nil {
		t.Error("ParseWorkspace(home) should fail")
	}
	if _, err := ParseWorkspace(""); err == nil {
		t.Error("ParseWorkspace(\"\") should fail")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "https url", raw: "https://example.com/docs"},
		{name: "http url with port", raw: "http://10.0.0.1:8080/"},
		{name: "not a url", raw: "not-a-url", wantErr: true},
		{name: "relative path", raw: "/docs/page", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "spaces only", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}
