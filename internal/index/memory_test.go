package index

import (
	"sync"
	"testing"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex()
	if idx == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if got := idx.Count(); got != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v reminders", got)
	}
	if !idx.GetLastRefresh().IsZero() {
		t.Error("NewMemoryIndex() should have zero lastRefresh")
	}
}

func TestUpdateRemindersOverwrites(t *testing.T) {
	idx := NewMemoryIndex()

	initial := []*domain.Reminder{
		{ID: "r1", Task: "standup", TimeOfDay: "09:00"},
	}
	idx.UpdateReminders(initial)

	updated := []*domain.Reminder{
		{ID: "r2", Task: "review", TimeOfDay: "14:00"},
		{ID: "r3", Task: "timesheet", TimeOfDay: "17:30"},
	}
	idx.UpdateReminders(updated)

	if got := idx.Count(); got != 2 {
		t.Errorf("UpdateReminders() should overwrite, got %v reminders want 2", got)
	}
	if _, ok := idx.GetReminder("r1"); ok {
		t.Error("UpdateReminders() kept a reminder from the previous snapshot")
	}
	if idx.GetLastRefresh().IsZero() {
		t.Error("UpdateReminders() should set lastRefresh")
	}
}

func TestGetReminder(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpdateReminders([]*domain.Reminder{
		{ID: "r1", Task: "standup", TimeOfDay: "09:00"},
	})

	if _, ok := idx.GetReminder("r1"); !ok {
		t.Error("GetReminder(r1) not found")
	}
	if _, ok := idx.GetReminder("missing"); ok {
		t.Error("GetReminder(missing) should not be found")
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewMemoryIndex()
	reminders := []*domain.Reminder{
		{ID: "r1", Task: "standup", TimeOfDay: "09:00"},
		{ID: "r2", Task: "review", TimeOfDay: "14:00"},
	}
	idx.UpdateReminders(reminders)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = idx.GetAllReminders()
		}()
		go func() {
			defer wg.Done()
			idx.UpdateReminders(reminders)
		}()
	}
	wg.Wait()

	if got := idx.Count(); got != 2 {
		t.Errorf("Count() = %v after concurrent updates, want 2", got)
	}
}
