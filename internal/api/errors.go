package api

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any request is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NetworkError means the request could not be completed or its response
// could not be read.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-ok HTTP response.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// AuthError is a task list fetch the server rejected for the session's
// user. It invalidates the session.
type AuthError struct {
	UserID string
	Status int
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return "list tasks: no user id in session"
	}
	return fmt.Sprintf("list tasks for user %q: status %d", e.UserID, e.Status)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}

// Message returns the server's {error} text when err carries one.
func Message(err error) string {
	var s *ServerError
	if errors.As(err, &s) {
		return s.Message
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Msg
	}
	return ""
}
