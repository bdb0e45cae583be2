// Package client is a typed Go client for the imp-link-manager API.
// It owns the session token, attaches the active workspace to every
// request, and surfaces server error messages as APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/utils"
)

// DefaultTimeout bounds each API call when the caller's context carries
// no deadline of its own.
const DefaultTimeout = 10 * time.Second

// APIError carries the server's status code and user-facing message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one imp-link-manager server.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	token     string
	workspace domain.Workspace
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-call fallback timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workspace returns the workspace selected at login, empty before login.
func (c *Client) Workspace() domain.Workspace { return c.workspace }

// SetToken installs a previously issued session token (e.g. restored
// from disk) and its workspace without going through Login.
func (c *Client) SetToken(token string, workspace domain.Workspace) {
	c.token = token
	c.workspace = workspace
}

type loginRequest struct {
	Workspace string `json:"type"`
	Secret    string `json:"secret"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Workspace string    `json:"workspace"`
}

// Login authenticates against a workspace and stores the session token
// for subsequent calls.
func (c *Client) Login(ctx context.Context, workspace domain.Workspace, secret string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Workspace: workspace.String(),
		Secret:    secret,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	c.workspace = workspace
	return nil
}

// LinkInput is the payload for creating or updating a link.
type LinkInput struct {
	Name        string           `json:"name"`
	URL         string           `json:"link"`
	Category    string           `json:"category,omitempty"`
	Tags        domain.TagsInput `json:"tags,omitempty"`
	Description string           `json:"description,omitempty"`
	Workspace   domain.Workspace `json:"type"`
}

// Links lists the active workspace's links, newest first.
func (c *Client) Links(ctx context.Context) ([]*domain.Link, error) {
	var links []*domain.Link
	if err := c.do(ctx, http.MethodGet, "/imp-links"+c.workspaceQuery(), nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// CreateLink stores a new link. An empty input workspace defaults to the
// session's.
func (c *Client) CreateLink(ctx context.Context, input LinkInput) (*domain.Link, error) {
	c.defaultWorkspace(&input.Workspace)
	var link domain.Link
	if err := c.do(ctx, http.MethodPost, "/imp-links", input, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateLink replaces an existing link's fields.
func (c *Client) UpdateLink(ctx context.Context, id string, input LinkInput) (*domain.Link, error) {
	c.defaultWorkspace(&input.Workspace)
	var link domain.Link
	if err := c.do(ctx, http.MethodPut, "/imp-links/"+url.PathEscape(id), input, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// DeleteLink removes a link permanently. See NewLinkDeleter for the
// delete-with-undo flow.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/imp-links/"+url.PathEscape(id), nil, nil)
}

// ReminderInput is the payload for creating or updating a reminder.
type ReminderInput struct {
	Task      string           `json:"task"`
	TimeOfDay string           `json:"timeOfDay"`
	Workspace domain.Workspace `json:"type"`
	Repeat    domain.Repeat    `json:"repeat,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

// Reminders lists the active workspace's reminders, oldest first.
func (c *Client) Reminders(ctx context.Context) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders"+c.workspaceQuery(), nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// DueReminders lists reminders currently inside their notify window.
func (c *Client) DueReminders(ctx context.Context) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders/due", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder stores a new reminder.
func (c *Client) CreateReminder(ctx context.Context, input ReminderInput) (*domain.Reminder, error) {
	c.defaultWorkspace(&input.Workspace)
	var reminder domain.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders", input, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// UpdateReminder replaces an existing reminder's fields.
func (c *Client) UpdateReminder(ctx context.Context, id string, input ReminderInput) (*domain.Reminder, error) {
	c.defaultWorkspace(&input.Workspace)
	var reminder domain.Reminder
	if err := c.do(ctx, http.MethodPut, "/reminders/"+url.PathEscape(id), input, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// MarkReminderDone records a completion for today, silencing the
// reminder until tomorrow.
func (c *Client) MarkReminderDone(ctx context.Context, id string) (*domain.Reminder, error) {
	var reminder domain.Reminder
	if err := c.do(ctx, http.MethodPatch, "/reminders/"+url.PathEscape(id)+"/done", nil, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// DeleteReminder removes a reminder permanently. See NewReminderDeleter
// for the delete-with-undo flow.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil)
}

// Categories lists all categories sorted by name.
func (c *Client) Categories(ctx context.Context) ([]*domain.Category, error) {
	var cats []*domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory creates a category by name; creating an existing name
// returns the existing record.
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var cat domain.Category
	payload := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories", payload, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// ExportExcel downloads the workbook export. The caller must close the
// returned reader; closing it releases the underlying request.
func (c *Client) ExportExcel(ctx context.Context) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/imp-links/export", nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := decodeAPIError(resp)
		utils.Close(resp.Body)
		cancel()
		return nil, apiErr
	}

	return &utils.CancelOnClose{ReadCloser: resp.Body, Cancel: cancel}, nil
}

// do runs one JSON round trip: marshal in, check the envelope, decode
// data out. out may be nil when the caller only needs success/failure.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) workspaceQuery() string {
	if c.workspace == "" {
		return ""
	}
	return "?type=" + url.QueryEscape(c.workspace.String())
}

func (c *Client) defaultWorkspace(w *domain.Workspace) {
	if *w == "" {
		*w = c.workspace
	}
}

func decodeAPIError(resp *http.Response) *APIError {
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
