package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/api"
	"taskpad/internal/tasklist"
)

type tasksLoadedMsg struct {
	seq    uint64
	userID string
	tasks  []api.Task
	err    error
}

type taskCreatedMsg struct {
	task api.Task
	err  error
}

type toggledMsg struct {
	op  tasklist.ToggleOp
	err error
}

type editedMsg struct {
	op  tasklist.EditOp
	err error
}

type deletedMsg struct {
	op  tasklist.DeleteOp
	err error
}

type detachMsg struct{ id string }

type highlightDoneMsg struct {
	id  string
	seq uint64
}

type armOutsideMsg struct {
	id    string
	token uint64
}

type toastExpireMsg struct{ id string }

const (
	msgEmptyTask     = "Please enter a task!"
	msgAdded         = "Task added successfully!"
	msgAddFailed     = "Failed to add task. Please try again."
	msgCompleted     = "Task completed!"
	msgPending       = "Task marked as pending"
	msgToggleFailed  = "Failed to update task status"
	msgUpdated       = "Task updated successfully"
	msgUpdateFailed  = "Failed to update task"
	msgDeleted       = "Task deleted successfully"
	msgDeleteFailed  = "Failed to delete task"
	msgLoadFailed    = "Failed to load tasks. Please try again."
	msgSessionExpire = "Session expired. Please log in again."
)

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	}

	k := m.keys
	switch {
	case m.matches(msg, k.Quit):
		return m, tea.Quit
	case m.matches(msg, k.Up):
		m.cursor = clampCursor(m.cursor-1, m.list.Len())
	case m.matches(msg, k.Down):
		m.cursor = clampCursor(m.cursor+1, m.list.Len())
	case m.matches(msg, k.Add):
		m.mode = modeAdd
		cmd := m.input.Focus()
		return m, cmd
	case m.matches(msg, k.Toggle):
		return m.toggleSelected()
	case m.matches(msg, k.Edit):
		return m.editSelected()
	case m.matches(msg, k.Delete):
		return m.deleteSelected()
	case m.matches(msg, k.Filter):
		m.list.SetFilter(m.list.Filter().Next())
		cmd := m.refresh()
		return m, cmd
	case m.matches(msg, k.Refresh):
		cmd := m.refresh()
		return m, cmd
	case m.matches(msg, k.Theme):
		return m.cycleTheme()
	case m.matches(msg, k.DarkMode):
		return m.toggleDark()
	case m.matches(msg, k.Logout):
		cmd := tea.Batch(m.begin(), m.logoutCmd())
		return m, cmd
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case m.matches(msg, m.keys.Confirm):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, m.notifyError(msgEmptyTask)
		}
		cmd := tea.Batch(m.begin(), m.createCmd(text))
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.list.Editing()
	if id == "" {
		m.leaveEditMode()
		return m, nil
	}
	switch {
	case m.matches(msg, m.keys.Cancel):
		if err := m.list.CancelEdit(id); err != nil {
			m.logger.Debug("cancel edit", "id", id, "error", err)
		}
		m.leaveEditMode()
		return m, nil
	case m.matches(msg, m.keys.Confirm), m.matches(msg, m.keys.Save):
		op, err := m.list.CommitEdit(id)
		if err != nil {
			return m, m.notifyError(editErrorMessage(err))
		}
		m.leaveEditMode()
		cmd := tea.Batch(m.begin(), m.editCmd(op))
		return m, cmd
	case m.matches(msg, m.keys.Leave):
		op, committed, err := m.list.OutsideClick(id)
		if err != nil {
			return m, m.notifyError(editErrorMessage(err))
		}
		if !committed {
			return m, nil
		}
		m.leaveEditMode()
		if msg.String() == "up" {
			m.cursor = clampCursor(m.cursor-1, m.list.Len())
		} else {
			m.cursor = clampCursor(m.cursor+1, m.list.Len())
		}
		cmd := tea.Batch(m.begin(), m.editCmd(op))
		return m, cmd
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	if err := m.list.SetDraft(id, m.edit.Value()); err != nil {
		m.logger.Debug("set draft", "id", id, "error", err)
	}
	return m, cmd
}

func editErrorMessage(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return msgUpdateFailed
}

func (m *Model) leaveEditMode() {
	m.mode = modeList
	m.edit.Blur()
	m.edit.Reset()
}

func (m Model) selected() (tasklist.Record, bool) {
	return m.list.At(m.cursor)
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	op, err := m.list.Toggle(r.ID)
	if err != nil {
		m.logger.Debug("toggle ignored", "id", r.ID, "error", err)
		return m, nil
	}
	cmd := tea.Batch(m.begin(), m.toggleCmd(op))
	return m, cmd
}

func (m Model) editSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	token, err := m.list.BeginEdit(r.ID)
	if err != nil {
		m.logger.Debug("edit ignored", "id", r.ID, "error", err)
		return m, nil
	}
	m.mode = modeEdit
	m.edit.SetValue(r.Text)
	m.edit.CursorEnd()
	cmd := tea.Batch(m.edit.Focus(), m.after(tasklist.ArmDelay, armOutsideMsg{id: r.ID, token: token}))
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	op, err := m.list.Delete(r.ID)
	if err != nil {
		m.logger.Debug("delete ignored", "id", r.ID, "error", err)
		return m, nil
	}
	cmd := tea.Batch(m.begin(), m.deleteCmd(op))
	return m, cmd
}

// refresh fetches the list again. Results of earlier fetches are dropped.
func (m *Model) refresh() tea.Cmd {
	m.refreshSeq++
	return tea.Batch(m.begin(), m.fetchTasks(m.refreshSeq, m.sess.UserID()))
}

func (m Model) fetchTasks(seq uint64, userID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		tasks, err := client.ListTasks(ctx, userID)
		return tasksLoadedMsg{seq: seq, userID: userID, tasks: tasks, err: err}
	}
}

func (m Model) createCmd(text string) tea.Cmd {
	ctx, client, userID := m.ctx, m.client, m.sess.UserID()
	return func() tea.Msg {
		t, err := client.CreateTask(ctx, text, userID)
		return taskCreatedMsg{task: t, err: err}
	}
}

func (m Model) toggleCmd(op tasklist.ToggleOp) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		completed := op.Completed
		err := client.UpdateTask(ctx, op.ID, api.TaskPatch{Completed: &completed})
		return toggledMsg{op: op, err: err}
	}
}

func (m Model) editCmd(op tasklist.EditOp) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		text := op.Text
		err := client.UpdateTask(ctx, op.ID, api.TaskPatch{Text: &text})
		return editedMsg{op: op, err: err}
	}
}

func (m Model) deleteCmd(op tasklist.DeleteOp) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return deletedMsg{op: op, err: client.DeleteTask(ctx, op.ID)}
	}
}

func (m Model) onTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.seq != m.refreshSeq || m.screen != screenTasks {
		m.logger.Debug("dropped stale task list", "seq", msg.seq, "current", m.refreshSeq)
		return m, nil
	}
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.auth.Invalidate(msg.err)
			m.toLoggedOut()
			return m, m.notifyError(msgSessionExpire)
		}
		m.logger.Error("load tasks", "error", msg.err)
		return m, m.notifyError(msgLoadFailed)
	}
	m.list.RenderAll(msg.tasks)
	if m.mode == modeEdit {
		m.leaveEditMode()
	}
	m.cursor = clampCursor(m.cursor, m.list.Len())
	return m, nil
}

func (m Model) onTaskCreated(msg taskCreatedMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		m.logger.Error("create task", "error", msg.err)
		return m, m.notifyError(msgAddFailed)
	}
	if m.screen != screenTasks {
		return m, nil
	}
	m.list.RenderOne(msg.task)
	m.cursor = m.list.Index(msg.task.ID)
	m.input.Reset()
	if m.mode == modeAdd {
		m.mode = modeList
		m.input.Blur()
	}
	return m, m.notifySuccess(msgAdded)
}

func (m Model) onToggled(msg toggledMsg) (tea.Model, tea.Cmd) {
	m.done()
	eff := m.list.ApplyToggle(msg.op, msg.err)
	if eff.Stale && msg.err == nil {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Error("toggle task", "id", msg.op.ID, "error", msg.err)
		cmds := []tea.Cmd{m.notifyError(msgToggleFailed)}
		if eff.Reload {
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)
	}
	text := msgPending
	if msg.op.Completed {
		text = msgCompleted
	}
	cmds := []tea.Cmd{m.notifySuccess(text)}
	if eff.Detach {
		cmds = append(cmds, m.after(tasklist.RemoveDelay, detachMsg{id: msg.op.ID}))
	}
	if eff.HighlightSeq != 0 {
		cmds = append(cmds, m.after(tasklist.HighlightDuration, highlightDoneMsg{id: msg.op.ID, seq: eff.HighlightSeq}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onEdited(msg editedMsg) (tea.Model, tea.Cmd) {
	m.done()
	eff := m.list.ApplyEdit(msg.op, msg.err)
	if msg.err != nil {
		m.logger.Error("edit task", "id", msg.op.ID, "error", msg.err)
		cmds := []tea.Cmd{m.notifyError(msgUpdateFailed)}
		if eff.Reload {
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)
	}
	if eff.Stale {
		return m, nil
	}
	return m, m.notifySuccess(msgUpdated)
}

func (m Model) onDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.done()
	eff := m.list.ApplyDelete(msg.op, msg.err)
	if msg.err != nil {
		m.logger.Error("delete task", "id", msg.op.ID, "error", msg.err)
		cmds := []tea.Cmd{m.notifyError(msgDeleteFailed)}
		if eff.Reload {
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)
	}
	if eff.Stale {
		return m, nil
	}
	cmds := []tea.Cmd{m.notifySuccess(msgDeleted)}
	if eff.Detach {
		cmds = append(cmds, m.after(tasklist.RemoveDelay, detachMsg{id: msg.op.ID}))
	}
	return m, tea.Batch(cmds...)
}

// toLoggedOut hides the task section and discards every rendered task.
func (m *Model) toLoggedOut() {
	m.list.Reset()
	m.screen = screenAuth
	m.mode = modeList
	m.form = formNone
	m.cursor = 0
	m.input.Blur()
	m.input.Reset()
	m.edit.Blur()
	m.edit.Reset()
}

func (m Model) renderTasks() string {
	var b strings.Builder

	b.WriteString(m.styles.label.Render("filter: "))
	b.WriteString(string(m.list.Filter()))
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("new task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.list.Empty() {
		b.WriteString(m.styles.muted.Render("No tasks yet. Press '" + m.cfg.Keys.Add + "' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range m.list.Records() {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.cursor.Render("> ")
		}
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		b.WriteString(cursor)
		b.WriteString(box)
		b.WriteString(" ")
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(r tasklist.Record) string {
	if r.State == tasklist.Editing {
		return m.edit.View()
	}
	text := m.styles.row.Render(r.Text)
	if r.Completed {
		text = m.styles.completed.Render(r.Text)
	}
	switch {
	case r.Removing:
		text = m.styles.removing.Render(r.Text)
	case r.State == tasklist.Deleting:
		text = m.styles.deleting.Render(fmt.Sprintf("%s (deleting)", r.Text))
	case r.Highlight:
		text = m.styles.highlight.Render(text)
	}
	return text
}
