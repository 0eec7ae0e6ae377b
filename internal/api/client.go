// Package api is the HTTP client for the remote task and auth endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task mirrors the server's task entity.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"task"`
	Completed bool   `json:"completed"`
	UserID    string `json:"userID,omitempty"`
}

// TaskPatch is a partial update; nil fields keep the server-side value.
type TaskPatch struct {
	Text      *string `json:"task,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type createRequest struct {
	Task   string `json:"task"`
	UserID string `json:"userID"`
}

type createResponse struct {
	Task *Task `json:"task"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID string `json:"userID"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client talks to the task API. It never retries; every failure is
// returned once to the caller.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New returns a client for baseURL. A zero timeout means requests may wait
// indefinitely.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL is the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// CreateTask posts a new task for userID. Text is trimmed and must not be
// empty.
func (c *Client) CreateTask(ctx context.Context, text, userID string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, &ValidationError{Msg: "task text is empty"}
	}
	var out createResponse
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", createRequest{Task: text, UserID: userID}, &out); err != nil {
		return Task{}, err
	}
	if out.Task == nil || out.Task.ID == "" {
		return Task{}, &ServerError{Op: "create task", Status: http.StatusOK, Message: "response has no task"}
	}
	if out.Task.UserID == "" {
		out.Task.UserID = userID
	}
	return *out.Task, nil
}

// ListTasks returns userID's tasks in server order. Any non-ok response is
// reported as an *AuthError.
func (c *Client) ListTasks(ctx context.Context, userID string) ([]Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &AuthError{}
	}
	var tasks []Task
	err := c.do(ctx, "list tasks", http.MethodGet, "/tasks/user/"+url.PathEscape(userID), nil, &tasks)
	if se, ok := err.(*ServerError); ok {
		return nil, &AuthError{UserID: userID, Status: se.Status}
	}
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].UserID == "" {
			tasks[i].UserID = userID
		}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	return c.do(ctx, "update task", http.MethodPut, "/tasks/"+url.PathEscape(id), patch, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.do(ctx, "signup", http.MethodPost, "/signup", credentials{Email: email, Password: password}, nil)
}

// Login returns the user id the server assigned to the account.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", credentials{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", &ServerError{Op: "login", Status: http.StatusOK, Message: "Login failed"}
	}
	return out.UserID, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil)
}

// ForgotPassword asks the server to mail a temporary password and returns
// its confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, "forgot password", http.MethodPost, "/forgot-password", forgotRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "method", method, "path", path, "request_id", reqID, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.logger.Debug("request done", "op", op, "method", method, "path", path, "request_id", reqID,
		"status", resp.StatusCode, "duration", time.Since(start))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb messageResponse
		_ = json.Unmarshal(data, &eb)
		return &ServerError{Op: op, Status: resp.StatusCode, Message: eb.Error}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
