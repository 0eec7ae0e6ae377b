// Package notify keeps the transient success and error messages shown to the
// user.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Lifetime is how long a toast stays visible.
const Lifetime = 3 * time.Second

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

type Toast struct {
	ID      string
	Level   Level
	Message string
	Created time.Time
}

// Center holds the active toasts, oldest first.
type Center struct {
	toasts []Toast
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{now: time.Now}
}

func (c *Center) Success(msg string) Toast { return c.push(LevelSuccess, msg) }
func (c *Center) Error(msg string) Toast   { return c.push(LevelError, msg) }

func (c *Center) push(level Level, msg string) Toast {
	t := Toast{ID: uuid.NewString(), Level: level, Message: msg, Created: c.now()}
	c.toasts = append(c.toasts, t)
	return t
}

// Expire removes the toast with id. Unknown ids are ignored.
func (c *Center) Expire(id string) {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Prune drops every toast older than Lifetime.
func (c *Center) Prune() {
	cutoff := c.now().Add(-Lifetime)
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.Created.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
}

func (c *Center) Active() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Latest returns the newest toast, if any.
func (c *Center) Latest() (Toast, bool) {
	if len(c.toasts) == 0 {
		return Toast{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}
