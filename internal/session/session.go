// Package session holds the logged-in flag and current user id.
package session

import (
	"errors"
	"fmt"
	"strings"

	"taskpad/internal/storage"
)

// KV is the durable key/value store the session lives in.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Session is the explicit session context handed to every component that
// makes auth-gated calls. Clear is the only way the session is torn down.
type Session struct {
	kv      KV
	onClear []func()
}

func New(kv KV) *Session {
	return &Session{kv: kv}
}

// IsLoggedIn reports whether the stored flag is "true". A storage error reads
// as logged out.
func (s *Session) IsLoggedIn() bool {
	v, ok, err := s.kv.Get(storage.KeyLoggedIn)
	return err == nil && ok && v == "true"
}

// UserID returns the stored user id, or "" when absent.
func (s *Session) UserID() string {
	v, _, err := s.kv.Get(storage.KeyUserID)
	if err != nil {
		return ""
	}
	return v
}

// Start records a successful login.
func (s *Session) Start(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("session: empty user id")
	}
	if err := s.kv.Set(storage.KeyLoggedIn, "true"); err != nil {
		return fmt.Errorf("session: store flag: %w", err)
	}
	if err := s.kv.Set(storage.KeyUserID, userID); err != nil {
		return fmt.Errorf("session: store user id: %w", err)
	}
	return nil
}

// Clear removes the session and runs the registered clear hooks.
func (s *Session) Clear() error {
	err1 := s.kv.Remove(storage.KeyLoggedIn)
	err2 := s.kv.Remove(storage.KeyUserID)
	for _, fn := range s.onClear {
		fn()
	}
	return errors.Join(err1, err2)
}

// OnClear registers fn to run after every Clear.
func (s *Session) OnClear(fn func()) {
	s.onClear = append(s.onClear, fn)
}
