// Package remote reads the seed todo list over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nibzard/taskgrid/internal/todo"
)

// DefaultEndpoint is the public todo list the grid is seeded from.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/todos"

// maxBodyBytes caps the response body read from the endpoint.
const maxBodyBytes = 16 << 20

// Source returns the remote todo items.
type Source interface {
	FetchTodos(ctx context.Context) ([]todo.RemoteTodo, error)
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected response: %s", e.Status)
	}
	return fmt.Sprintf("unexpected response: http %d", e.Code)
}

// Client implements Source with a plain GET request.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a client for endpoint. An empty endpoint uses
// DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
		UserAgent:  "taskgrid",
	}
}

// FetchTodos performs one GET and decodes the JSON array.
// There is no retry; callers decide whether to ask again.
func (c *Client) FetchTodos(ctx context.Context) ([]todo.RemoteTodo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var items []todo.RemoteTodo
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse todos: %w", err)
	}
	return items, nil
}

// LoadTasks fetches from src and maps every item to a task.
// A positive timeout bounds the whole request.
func LoadTasks(ctx context.Context, src Source, timeout time.Duration) ([]todo.Task, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	items, err := src.FetchTodos(ctx)
	if err != nil {
		return nil, err
	}
	return todo.FromRemoteList(items), nil
}

// StaticSource serves a fixed list, or a fixed error.
type StaticSource struct {
	Items []todo.RemoteTodo
	Err   error
	Calls int
}

// FetchTodos returns the configured items or error.
func (s *StaticSource) FetchTodos(ctx context.Context) ([]todo.RemoteTodo, error) {
	s.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]todo.RemoteTodo, len(s.Items))
	copy(out, s.Items)
	return out, nil
}
