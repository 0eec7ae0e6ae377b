// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"taskpad/internal/api"
)

// Request is one call the fake API received.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

// FakeAPI is an in-memory implementation of the task API served over
// httptest.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int
	tasks    []api.Task
	users    map[string]string // email -> password
	userIDs  map[string]string // email -> user id
	requests []Request

	// Status injection: when set, the endpoint answers with this status and
	// an {error} body instead of doing its work.
	CreateStatus int
	ListStatus   int
	UpdateStatus int
	DeleteStatus int
	SignupStatus int
	LoginStatus  int
	LogoutStatus int
	ForgotStatus int
}

// NewFakeAPI starts a fake API server that is closed when t finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		users:   make(map[string]string),
		userIDs: make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeAPI) URL() string { return f.Server.URL }

// AddUser registers an account with a fixed user id.
func (f *FakeAPI) AddUser(email, password, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
	f.userIDs[email] = userID
}

// AddTask seeds a task and returns its id.
func (f *FakeAPI) AddTask(userID, text string, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(userID, text, completed).ID
}

// Task returns the stored task with id.
func (f *FakeAPI) Task(id string) (api.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return api.Task{}, false
}

// Requests returns a copy of every request seen so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// CountRequests counts requests whose method and path match.
func (f *FakeAPI) CountRequests(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeAPI) insert(userID, text string, completed bool) api.Task {
	f.nextID++
	t := api.Task{ID: fmt.Sprintf("t%d", f.nextID), Text: text, Completed: completed, UserID: userID}
	f.tasks = append(f.tasks, t)
	return t
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/tasks":
		f.create(w, body)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/tasks/user/"):
		f.list(w, strings.TrimPrefix(path, "/tasks/user/"))
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/tasks/"):
		f.update(w, strings.TrimPrefix(path, "/tasks/"), body)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/tasks/"):
		f.delete(w, strings.TrimPrefix(path, "/tasks/"))
	case r.Method == http.MethodPost && path == "/signup":
		f.signup(w, body)
	case r.Method == http.MethodPost && path == "/login":
		f.login(w, body)
	case r.Method == http.MethodPost && path == "/logout":
		if f.fail(w, f.LogoutStatus) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out successfully!"})
	case r.Method == http.MethodPost && path == "/forgot-password":
		f.forgot(w, body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	}
}

func (f *FakeAPI) fail(w http.ResponseWriter, status int) bool {
	if status == 0 {
		return false
	}
	writeJSON(w, status, map[string]any{"error": http.StatusText(status)})
	return true
}

func (f *FakeAPI) create(w http.ResponseWriter, body map[string]any) {
	if f.fail(w, f.CreateStatus) {
		return
	}
	text, _ := body["task"].(string)
	userID, _ := body["userID"].(string)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Task content is required."})
		return
	}
	t := f.insert(userID, text, false)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Task added successfully!", "task": t})
}

func (f *FakeAPI) list(w http.ResponseWriter, userID string) {
	if f.fail(w, f.ListStatus) {
		return
	}
	out := []api.Task{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) update(w http.ResponseWriter, id string, body map[string]any) {
	if f.fail(w, f.UpdateStatus) {
		return
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if v, ok := body["task"].(string); ok {
			f.tasks[i].Text = v
		}
		if v, ok := body["completed"].(bool); ok {
			f.tasks[i].Completed = v
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Task updated successfully!"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "Task not found"})
}

func (f *FakeAPI) delete(w http.ResponseWriter, id string) {
	if f.fail(w, f.DeleteStatus) {
		return
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"message": "Task deleted successfully!"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "Task not found"})
}

func (f *FakeAPI) signup(w http.ResponseWriter, body map[string]any) {
	if f.fail(w, f.SignupStatus) {
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	if _, exists := f.users[email]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "User already exists."})
		return
	}
	f.users[email] = password
	f.userIDs[email] = fmt.Sprintf("u%d", len(f.users))
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered successfully!"})
}

func (f *FakeAPI) login(w http.ResponseWriter, body map[string]any) {
	if f.fail(w, f.LoginStatus) {
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	if pw, ok := f.users[email]; !ok || pw != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful!", "userID": f.userIDs[email]})
}

func (f *FakeAPI) forgot(w http.ResponseWriter, body map[string]any) {
	if f.fail(w, f.ForgotStatus) {
		return
	}
	email, _ := body["email"].(string)
	if _, ok := f.users[email]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "No user found with that email."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "A temporary password has been sent to your email."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
