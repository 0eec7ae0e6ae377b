package tasklist

import (
	"strings"

	"taskpad/internal/api"
)

type ToggleOp struct {
	ID        string
	Version   uint64
	Completed bool
	Prev      bool
}

// EditOp carries only the text. The completed flag belongs to toggles, so an
// edit never writes back a checkbox that a later toggle changed.
type EditOp struct {
	ID      string
	Version uint64
	Text    string
	Prev    string
}

type DeleteOp struct {
	ID      string
	Version uint64
}

// Toggle flips the checkbox of a Viewing row and returns the update to send.
func (l *List) Toggle(id string) (ToggleOp, error) {
	r := l.get(id)
	if r == nil {
		return ToggleOp{}, ErrNotFound
	}
	if r.State != Viewing || r.Removing {
		return ToggleOp{}, ErrBusy
	}
	prev := r.Completed
	r.Completed = !prev
	return ToggleOp{ID: id, Version: l.bump(id, fieldCompleted), Completed: r.Completed, Prev: prev}, nil
}

// ApplyToggle reconciles the result of a toggle. On failure the checkbox is
// reverted and a reload is requested, since a failed request may still have
// reached the server. A failure superseded by a later toggle leaves the
// checkbox to that toggle but still asks for a reload. On success a row that
// no longer matches the filter is removed; otherwise it is highlighted.
func (l *List) ApplyToggle(op ToggleOp, err error) Effect {
	r := l.get(op.ID)
	if r == nil {
		return Effect{}
	}
	if !l.current(op.ID, fieldCompleted, op.Version) {
		return Effect{Stale: true, Reload: err != nil}
	}
	if err != nil {
		r.Completed = op.Prev
		return Effect{Reload: true}
	}
	if !l.filter.Match(op.Completed) {
		return Effect{Detach: l.RemoveOne(op.ID)}
	}
	r.Completed = op.Completed
	r.highlightSeq++
	r.Highlight = true
	return Effect{HighlightSeq: r.highlightSeq}
}

// BeginEdit puts a Viewing row in edit mode with its text as the draft. The
// returned token must be passed to ArmOutside once ArmDelay has passed.
func (l *List) BeginEdit(id string) (uint64, error) {
	r := l.get(id)
	if r == nil {
		return 0, ErrNotFound
	}
	if l.editing != "" && l.editing != id {
		return 0, ErrEditPending
	}
	if r.State != Viewing || r.Removing {
		return 0, ErrBusy
	}
	r.State = Editing
	r.Draft = r.Text
	r.original = r.Text
	l.armSeq++
	r.armToken = l.armSeq
	r.armed = false
	l.editing = id
	return r.armToken, nil
}

// ArmOutside activates the outside-click handler of the edit that produced
// token. Tokens from an earlier edit are ignored.
func (l *List) ArmOutside(id string, token uint64) bool {
	r := l.get(id)
	if r == nil || r.State != Editing || r.armToken != token {
		return false
	}
	r.armed = true
	return true
}

// Armed reports whether the outside-click handler for id is active.
func (l *List) Armed(id string) bool {
	r := l.get(id)
	return r != nil && r.State == Editing && r.armed
}

// SetDraft updates the edit input of a row in edit mode.
func (l *List) SetDraft(id, text string) error {
	r := l.get(id)
	if r == nil {
		return ErrNotFound
	}
	if r.State != Editing {
		return ErrNotEditing
	}
	r.Draft = text
	return nil
}

// CommitEdit leaves edit mode with the trimmed draft as the shown text and
// returns the update to send. An empty draft is rejected and the row stays in
// edit mode.
func (l *List) CommitEdit(id string) (EditOp, error) {
	r := l.get(id)
	if r == nil {
		return EditOp{}, ErrNotFound
	}
	if r.State != Editing {
		return EditOp{}, ErrNotEditing
	}
	text := strings.TrimSpace(r.Draft)
	if text == "" {
		return EditOp{}, &api.ValidationError{Msg: MsgEmptyEdit}
	}
	prev := r.original
	l.leaveEdit(r)
	r.Text = text
	return EditOp{ID: id, Version: l.bump(id, fieldText), Text: text, Prev: prev}, nil
}

// CancelEdit discards the draft and restores the row. No request is made.
func (l *List) CancelEdit(id string) error {
	r := l.get(id)
	if r == nil {
		return ErrNotFound
	}
	if r.State != Editing {
		return ErrNotEditing
	}
	r.Text = r.original
	l.leaveEdit(r)
	return nil
}

// OutsideClick commits the edit on id if its outside-click handler is armed.
// committed is false when the click was ignored.
func (l *List) OutsideClick(id string) (op EditOp, committed bool, err error) {
	if !l.Armed(id) {
		return EditOp{}, false, nil
	}
	op, err = l.CommitEdit(id)
	if err != nil {
		return EditOp{}, false, err
	}
	return op, true, nil
}

// ApplyEdit reconciles the result of an edit. A failure restores the text
// shown before edit mode was entered. A failure superseded by a later edit
// keeps that edit's text and asks for a reload.
func (l *List) ApplyEdit(op EditOp, err error) Effect {
	r := l.get(op.ID)
	if r == nil {
		return Effect{}
	}
	if !l.current(op.ID, fieldText, op.Version) {
		return Effect{Stale: true, Reload: err != nil}
	}
	if err != nil {
		r.Text = op.Prev
	}
	return Effect{}
}

// Delete marks a Viewing row as deleting and returns the request to send.
func (l *List) Delete(id string) (DeleteOp, error) {
	r := l.get(id)
	if r == nil {
		return DeleteOp{}, ErrNotFound
	}
	if r.State != Viewing || r.Removing {
		return DeleteOp{}, ErrBusy
	}
	r.State = Deleting
	return DeleteOp{ID: id, Version: l.bump(id, fieldDelete)}, nil
}

// ApplyDelete reconciles the result of a delete: success starts removal,
// failure returns the row to Viewing.
func (l *List) ApplyDelete(op DeleteOp, err error) Effect {
	r := l.get(op.ID)
	if r == nil {
		return Effect{}
	}
	if !l.current(op.ID, fieldDelete, op.Version) {
		return Effect{Stale: true, Reload: err != nil}
	}
	if err != nil {
		r.State = Viewing
		return Effect{}
	}
	return Effect{Detach: l.RemoveOne(op.ID)}
}

func (l *List) leaveEdit(r *Record) {
	r.State = Viewing
	r.Draft = ""
	r.original = ""
	r.armed = false
	r.armToken = 0
	if l.editing == r.ID {
		l.editing = ""
	}
}
