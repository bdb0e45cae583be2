package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/auth"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/index"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/notify"
)

// LinkStore is the persistence surface the link handlers need.
type LinkStore interface {
	SaveLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	ListLinks(ctx context.Context, workspace domain.Workspace) ([]*domain.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

// ReminderStore is the persistence surface the reminder handlers need.
type ReminderStore interface {
	SaveReminder(ctx context.Context, reminder *domain.Reminder) error
	GetReminder(ctx context.Context, id string) (*domain.Reminder, error)
	ListReminders(ctx context.Context, workspace domain.Workspace) ([]*domain.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
}

// CategoryStore is the persistence surface the category handlers need.
type CategoryStore interface {
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	EnsureCategory(ctx context.Context, cat *domain.Category) (*domain.Category, bool, error)
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access the infra endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Links      LinkStore
	Reminders  ReminderStore
	Categories CategoryStore

	RedisClient *redis.Client      // Redis client connection (for readiness probes)
	MemoryIndex *index.MemoryIndex // In-memory reminder snapshot
	Notifier    *notify.Notifier   // Running reminder notifier (nil in some tests)

	NotifyTrigger chan struct{} // Channel to force an immediate reminder re-evaluation
	NotifyWindow  time.Duration // Forward-looking due window

	Sessions     *auth.SessionManager
	Credentials  auth.Verifier
	AuthRequired bool // false => protected routes accept unauthenticated requests
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// PokeNotifier requests an immediate reminder re-evaluation without
// blocking the mutation that triggered it.
func (d Deps) PokeNotifier() {
	if d.NotifyTrigger == nil {
		return
	}
	select {
	case d.NotifyTrigger <- struct{}{}:
	default:
	}
}
