// Package tasklist is the view-model behind the task list: one record per
// visible task id, the active filter, and the per-row Viewing/Editing/Deleting
// state machine. Rendering is a projection of these records; nothing here
// touches the terminal or the network.
package tasklist

import (
	"errors"
	"time"

	"taskpad/internal/api"
)

const (
	// RemoveDelay is how long a removed row stays on screen before it is
	// detached.
	RemoveDelay = 300 * time.Millisecond
	// HighlightDuration is how long a toggled row stays highlighted.
	HighlightDuration = 500 * time.Millisecond
	// ArmDelay is how long after entering edit mode leaving the row starts
	// to count as an outside click.
	ArmDelay = 10 * time.Millisecond
)

var (
	ErrNotFound    = errors.New("task not in list")
	ErrBusy        = errors.New("task is busy")
	ErrNotEditing  = errors.New("task is not being edited")
	ErrEditPending = errors.New("another task is being edited")
)

// MsgEmptyEdit is the validation message for committing empty text.
const MsgEmptyEdit = "Task content cannot be empty"

type State int

const (
	Viewing State = iota
	Editing
	Deleting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Deleting:
		return "deleting"
	default:
		return "viewing"
	}
}

// Record is the view state of one rendered task.
type Record struct {
	ID        string
	Text      string
	Completed bool
	State     State
	Draft     string
	Removing  bool
	Highlight bool

	original     string
	armToken     uint64
	armed        bool
	highlightSeq uint64
}

// Effect tells the caller what follow-up a reconciled result needs.
type Effect struct {
	// Stale is set when a later request for the same field superseded the
	// result, so it left the row alone.
	Stale bool
	// Detach asks for Detach(id) after RemoveDelay.
	Detach bool
	// HighlightSeq, when non-zero, asks for ClearHighlight(id, seq) after
	// HighlightDuration.
	HighlightSeq uint64
	// Reload asks for a fresh fetch of the list.
	Reload bool
}

// field is the part of a task a request writes. Results only go stale
// against a later request for the same field.
type field int

const (
	fieldText field = iota
	fieldCompleted
	fieldDelete
)

type versionKey struct {
	id    string
	field field
}

type List struct {
	filter  Filter
	records []*Record
	// versions outlive records so results issued before a RenderAll still
	// match the re-rendered row.
	versions map[versionKey]uint64
	editing  string
	armSeq   uint64
}

func New(filter Filter) *List {
	return &List{filter: filter, versions: make(map[versionKey]uint64)}
}

func (l *List) Filter() Filter { return l.filter }

// SetFilter changes the active filter. Callers refresh the list afterwards.
func (l *List) SetFilter(f Filter) { l.filter = f }

// RenderAll replaces every row with the tasks that match the filter, in the
// order given.
func (l *List) RenderAll(tasks []api.Task) {
	l.records = l.records[:0]
	l.editing = ""
	for _, t := range tasks {
		if !l.filter.Match(t.Completed) {
			continue
		}
		l.records = append(l.records, newRecord(t))
	}
}

// RenderOne appends a row for t, replacing any row that already has its id.
func (l *List) RenderOne(t api.Task) {
	if i := l.index(t.ID); i >= 0 {
		if l.editing == t.ID {
			l.editing = ""
		}
		l.records[i] = newRecord(t)
		return
	}
	l.records = append(l.records, newRecord(t))
}

// RemoveOne starts the removal animation for id. It returns false, doing
// nothing, when id is absent or already being removed.
func (l *List) RemoveOne(id string) bool {
	r := l.get(id)
	if r == nil || r.Removing {
		return false
	}
	r.Removing = true
	return true
}

// Detach drops the row for id regardless of its state. Missing ids are a
// no-op.
func (l *List) Detach(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	if l.editing == id {
		l.editing = ""
	}
	return true
}

// Reset forgets every row and version, as on logout.
func (l *List) Reset() {
	l.records = nil
	l.versions = make(map[versionKey]uint64)
	l.editing = ""
}

// Empty reports whether no rows are rendered.
func (l *List) Empty() bool { return len(l.records) == 0 }

func (l *List) Len() int { return len(l.records) }

// Records returns copies of the rows in display order.
func (l *List) Records() []Record {
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		out[i] = *r
	}
	return out
}

func (l *List) Get(id string) (Record, bool) {
	r := l.get(id)
	if r == nil {
		return Record{}, false
	}
	return *r, true
}

// At returns the row at display index i.
func (l *List) At(i int) (Record, bool) {
	if i < 0 || i >= len(l.records) {
		return Record{}, false
	}
	return *l.records[i], true
}

// Index returns the display index of id, or -1.
func (l *List) Index(id string) int { return l.index(id) }

// Editing returns the id of the row in edit mode, or "".
func (l *List) Editing() string { return l.editing }

func (l *List) ClearHighlight(id string, seq uint64) {
	if r := l.get(id); r != nil && r.highlightSeq == seq {
		r.Highlight = false
	}
}

func newRecord(t api.Task) *Record {
	return &Record{ID: t.ID, Text: t.Text, Completed: t.Completed}
}

func (l *List) get(id string) *Record {
	if i := l.index(id); i >= 0 {
		return l.records[i]
	}
	return nil
}

func (l *List) index(id string) int {
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) bump(id string, f field) uint64 {
	k := versionKey{id: id, field: f}
	l.versions[k]++
	return l.versions[k]
}

func (l *List) current(id string, f field, version uint64) bool {
	return l.versions[versionKey{id: id, field: f}] == version
}
