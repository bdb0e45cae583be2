package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultNotifyWindow is the forward-looking span before a reminder's
// scheduled time during which it becomes due. The window never wraps to
// the next day: once the scheduled time has passed, the reminder stays
// silent until tomorrow.
const DefaultNotifyWindow = 30 * time.Minute

// Repeat describes on which days a reminder recurs.
type Repeat string

const (
	RepeatDaily   Repeat = "daily"
	RepeatWeekday Repeat = "weekday"
	RepeatWeekend Repeat = "weekend"
)

// Valid reports whether r is a known repeat mode.
func (r Repeat) Valid() bool {
	return r == RepeatDaily || r == RepeatWeekday || r == RepeatWeekend
}

var timeOfDayRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Reminder is a daily task with a scheduled time of day.
type Reminder struct {
	ID string `json:"id"`

	// Workspace the reminder belongs to.
	Workspace Workspace `json:"type"`

	// Task is the reminder text. Required, stored trimmed.
	Task string `json:"task"`

	// TimeOfDay is the scheduled time in "HH:MM" 24h format.
	TimeOfDay string `json:"timeOfDay"`

	// IsActive gates whether the reminder participates in notification.
	IsActive bool `json:"isActive"`

	// LastDoneDate records the most recent "mark done" action, nil if never.
	LastDoneDate *time.Time `json:"lastDoneDate"`

	// Repeat is stored for display purposes; it does not currently affect
	// the notify window evaluation.
	Repeat Repeat `json:"repeat"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParseTimeOfDay validates an "HH:MM" value and returns its components.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !timeOfDayRe.MatchString(s) {
		return 0, 0, fmt.Errorf("timeOfDay must be in HH:MM format (24h), got %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("timeOfDay must be in HH:MM format (24h), got %q", s)
	}
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("timeOfDay out of range, got %q", s)
	}
	return hour, minute, nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DoneToday reports whether the reminder was marked done on the same
// calendar day as now.
func (r *Reminder) DoneToday(now time.Time) bool {
	return r.LastDoneDate != nil && SameDay(*r.LastDoneDate, now)
}

// ShouldNotify decides whether the reminder is due at now: the scheduled
// time lies within the next `window`, and the reminder has not already
// been marked done today. Malformed or missing TimeOfDay never fires.
func (r *Reminder) ShouldNotify(now time.Time, window time.Duration) bool {
	hour, minute, err := ParseTimeOfDay(r.TimeOfDay)
	if err != nil {
		return false
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	diff := target.Sub(now)
	if diff < 0 || diff > window {
		return false
	}

	return !r.DoneToday(now)
}
