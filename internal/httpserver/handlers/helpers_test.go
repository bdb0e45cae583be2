package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/index"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
	redisstore "github.com/Aditya-Goel-Compro/imp-link-manager/internal/store/redis"
)

// fakeStore is an in-memory stand-in for the Redis store, mirroring its
// sorting and not-found semantics.
type fakeStore struct {
	mu        sync.Mutex
	links     map[string]*domain.Link
	reminders map[string]*domain.Reminder
	cats      map[string]*domain.Category
	catByName map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		links:     make(map[string]*domain.Link),
		reminders: make(map[string]*domain.Reminder),
		cats:      make(map[string]*domain.Category),
		catByName: make(map[string]string),
	}
}

func (f *fakeStore) SaveLink(_ context.Context, link *domain.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *link
	f.links[link.ID] = &cp
	return nil
}

func (f *fakeStore) GetLink(_ context.Context, id string) (*domain.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.links[id]
	if !ok {
		return nil, redisstore.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) ListLinks(_ context.Context, workspace domain.Workspace) ([]*domain.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Link, 0, len(f.links))
	for _, l := range f.links {
		if workspace != "" && l.Workspace != workspace {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteLink(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[id]; !ok {
		return redisstore.ErrNotFound
	}
	delete(f.links, id)
	return nil
}

func (f *fakeStore) SaveReminder(_ context.Context, reminder *domain.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *reminder
	f.reminders[reminder.ID] = &cp
	return nil
}

func (f *fakeStore) GetReminder(_ context.Context, id string) (*domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok {
		return nil, redisstore.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) ListReminders(_ context.Context, workspace domain.Workspace) ([]*domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Reminder, 0, len(f.reminders))
	for _, r := range f.reminders {
		if workspace != "" && r.Workspace != workspace {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteReminder(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reminders[id]; !ok {
		return redisstore.ErrNotFound
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeStore) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cats[id]
	if !ok {
		return nil, redisstore.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ListCategories(_ context.Context) ([]*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Category, 0, len(f.cats))
	for _, c := range f.cats {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) EnsureCategory(_ context.Context, cat *domain.Category) (*domain.Category, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.catByName[cat.Name]; ok {
		cp := *f.cats[id]
		return &cp, false, nil
	}
	cp := *cat
	f.cats[cat.ID] = &cp
	f.catByName[cat.Name] = cat.ID
	return cat, true, nil
}

func testDeps(fs *fakeStore) deps.Deps {
	return deps.Deps{
		Logger:        logger.New("error", false),
		StartTime:     time.Now(),
		TimeNow:       time.Now,
		Links:         fs,
		Reminders:     fs,
		Categories:    fs,
		MemoryIndex:   index.NewMemoryIndex(),
		NotifyTrigger: make(chan struct{}, 1),
		NotifyWindow:  domain.DefaultNotifyWindow,
	}
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope parses the uniform response shape from a recorder.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string, json.RawMessage) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env.Success, env.Message, env.Data
}
