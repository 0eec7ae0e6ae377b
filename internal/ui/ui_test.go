package ui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/api"
	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/notify"
	"taskpad/internal/prefs"
	"taskpad/internal/session"
	"taskpad/internal/storage"
	"taskpad/internal/tasklist"
	"taskpad/internal/testutil"
)

type timer struct {
	d   time.Duration
	msg tea.Msg
}

type harness struct {
	t      *testing.T
	m      Model
	fake   *testutil.FakeAPI
	store  *storage.Store
	timers []timer
	quit   bool
}

func newHarness(t *testing.T, userID string) *harness {
	return newHarnessWith(t, userID, config.Default())
}

// newHarnessWith builds a model against a fake API. Commands run
// synchronously and timers are recorded instead of scheduled; call start to
// run Init.
func newHarnessWith(t *testing.T, userID string, cfg config.Config) *harness {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	store := testutil.OpenStore(t)
	sess := session.New(store)
	if userID != "" {
		require.NoError(t, sess.Start(userID))
	}
	p, err := prefs.Load(store)
	require.NoError(t, err)

	client := api.New(fake.URL(), 0, nil)
	h := &harness{t: t, fake: fake, store: store}
	m := New(Deps{
		Client: client,
		Auth:   auth.NewService(client, sess, nil),
		Prefs:  p,
		Config: cfg,
	})
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.edit.Cursor.SetMode(cursor.CursorStatic)
	m.email.Cursor.SetMode(cursor.CursorStatic)
	m.password.Cursor.SetMode(cursor.CursorStatic)
	m.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
		h.timers = append(h.timers, timer{d: d, msg: msg})
		return nil
	}
	h.m = m
	return h
}

func (h *harness) start() *harness {
	h.run(h.m.Init())
	return h
}

func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.QuitMsg:
			h.quit = true
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, h.update(msg))
		}
	}
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) send(msg tea.Msg) {
	h.run(h.update(msg))
}

func (h *harness) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.send(k)
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// fire delivers every recorded timer whose message satisfies match.
func (h *harness) fire(match func(tea.Msg) bool) int {
	var due, rest []timer
	for _, tm := range h.timers {
		if match(tm.msg) {
			due = append(due, tm)
		} else {
			rest = append(rest, tm)
		}
	}
	h.timers = rest
	for _, tm := range due {
		h.send(tm.msg)
	}
	return len(due)
}

func (h *harness) timerFor(match func(tea.Msg) bool) (timer, bool) {
	for _, tm := range h.timers {
		if match(tm.msg) {
			return tm, true
		}
	}
	return timer{}, false
}

func (h *harness) latest() notify.Toast {
	h.t.Helper()
	toast, ok := h.m.notes.Latest()
	require.True(h.t, ok, "expected a toast")
	return toast
}

func (h *harness) stored(key string) string {
	v, _, err := h.store.Get(key)
	require.NoError(h.t, err)
	return v
}

func isDetach(msg tea.Msg) bool    { _, ok := msg.(detachMsg); return ok }
func isArm(msg tea.Msg) bool       { _, ok := msg.(armOutsideMsg); return ok }
func isHighlight(msg tea.Msg) bool { _, ok := msg.(highlightDoneMsg); return ok }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func TestLoggedOut_HidesTaskSection(t *testing.T) {
	h := newHarness(t, "").start()
	assert.Equal(t, screenAuth, h.m.screen)
	view := h.m.View()
	assert.Contains(t, view, "You are logged out.")
	assert.NotContains(t, view, "filter:")
	assert.Empty(t, h.fake.Requests())
}

func TestLogin_StoresSessionAndLoadsTasks(t *testing.T) {
	h := newHarness(t, "").start()
	h.fake.AddUser("ann@example.com", "Secret1!", "42")
	h.fake.AddTask("42", "water plants", false)
	h.fake.AddTask("7", "not mine", false)

	h.press(runes("l"))
	require.Equal(t, formLogin, h.m.form)
	h.typeText("ann@example.com")
	h.press(keyTab)
	h.typeText("Secret1!")
	h.press(keyEnter)

	assert.Equal(t, "true", h.stored(storage.KeyLoggedIn))
	assert.Equal(t, "42", h.stored(storage.KeyUserID))
	assert.Equal(t, screenTasks, h.m.screen)
	assert.Equal(t, 1, h.fake.CountRequests(http.MethodGet, "/tasks/user/42"))

	records := h.m.list.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "water plants", records[0].Text)
	assert.Equal(t, msgLoginOK, h.latest().Message)
	assert.Equal(t, 0, h.m.pending)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t, "").start()
	h.fake.AddUser("ann@example.com", "Secret1!", "42")

	h.press(runes("l"))
	h.typeText("ann@example.com")
	h.press(keyTab)
	h.typeText("wrong")
	h.press(keyEnter)

	assert.Equal(t, screenAuth, h.m.screen)
	assert.Equal(t, formLogin, h.m.form)
	assert.Equal(t, msgLoginFailed, h.latest().Message)
	assert.Equal(t, notify.LevelError, h.latest().Level)
	assert.Empty(t, h.stored(storage.KeyLoggedIn))
}

func TestSignup_OpensLoginWithEmail(t *testing.T) {
	h := newHarness(t, "").start()

	h.press(runes("s"))
	h.typeText("new@example.com")
	h.press(keyTab)
	h.typeText("Passw0rd!")
	h.press(keyEnter)

	assert.Equal(t, 1, h.fake.CountRequests(http.MethodPost, "/signup"))
	assert.Equal(t, formLogin, h.m.form)
	assert.Equal(t, "new@example.com", h.m.email.Value())
	assert.Equal(t, 1, h.m.field)
	assert.Equal(t, msgSignupOK, h.latest().Message)
	assert.False(t, h.m.sess.IsLoggedIn())
}

func TestSignup_WeakPasswordMakesNoRequest(t *testing.T) {
	h := newHarness(t, "").start()

	h.press(runes("s"))
	h.typeText("new@example.com")
	h.press(keyTab)
	h.typeText("password")
	h.press(keyEnter)

	assert.Empty(t, h.fake.Requests())
	assert.Equal(t, auth.MsgWeakPassword, h.latest().Message)
	assert.Equal(t, formSignup, h.m.form)
}

func TestForgotPassword_ShowsServerMessage(t *testing.T) {
	h := newHarness(t, "").start()
	h.fake.AddUser("ann@example.com", "Secret1!", "42")

	h.press(runes("p"))
	h.typeText("ann@example.com")
	h.press(keyEnter)

	assert.Equal(t, formNone, h.m.form)
	assert.Equal(t, "A temporary password has been sent to your email.", h.latest().Message)
}

func TestForgotPassword_Failure(t *testing.T) {
	h := newHarness(t, "").start()

	h.press(runes("p"))
	h.typeText("ghost@example.com")
	h.press(keyEnter)

	assert.Equal(t, formForgot, h.m.form)
	assert.Equal(t, msgForgotFailed, h.latest().Message)
}

func TestShowPasswordToggle(t *testing.T) {
	h := newHarness(t, "").start()
	h.press(runes("l"))
	assert.Contains(t, h.m.helpBindings(), h.m.keys.ShowSecret)

	assert.Equal(t, textinput.EchoPassword, h.m.password.EchoMode)
	h.press(keyCtrlR)
	assert.Equal(t, textinput.EchoNormal, h.m.password.EchoMode)
	h.press(keyCtrlR)
	assert.Equal(t, textinput.EchoPassword, h.m.password.EchoMode)
}

func TestStartLoggedIn_LoadsTasks(t *testing.T) {
	h := newHarness(t, "42")
	h.fake.AddTask("42", "one", false)
	h.fake.AddTask("42", "two", true)
	h.start()

	assert.Equal(t, screenTasks, h.m.screen)
	assert.Equal(t, 2, h.m.list.Len())
	assert.Equal(t, 0, h.m.pending)
	view := h.m.View()
	assert.Contains(t, view, "[ ] ")
	assert.Contains(t, view, "[x] ")
}

func TestListRejected_ClearsSessionAndHidesTasks(t *testing.T) {
	h := newHarness(t, "42")
	h.fake.ListStatus = http.StatusNotFound
	h.start()

	assert.Equal(t, screenAuth, h.m.screen)
	assert.False(t, h.m.sess.IsLoggedIn())
	assert.Empty(t, h.stored(storage.KeyUserID))
	assert.True(t, h.m.list.Empty())
	assert.Equal(t, msgSessionExpire, h.latest().Message)
}

func TestStaleListResultDropped(t *testing.T) {
	h := newHarness(t, "42")
	h.fake.AddTask("42", "fresh", false)
	h.start()

	h.send(tasksLoadedMsg{seq: h.m.refreshSeq - 1, userID: "42", tasks: []api.Task{{ID: "old", Text: "old"}}})
	records := h.m.list.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].Text)
}

func TestAdd_EmptyTextMakesNoRequest(t *testing.T) {
	h := newHarness(t, "42").start()

	h.press(runes("a"))
	require.Equal(t, modeAdd, h.m.mode)
	h.typeText("   ")
	h.press(keyEnter)

	assert.Zero(t, h.fake.CountRequests(http.MethodPost, "/tasks"))
	assert.Equal(t, msgEmptyTask, h.latest().Message)
	assert.Equal(t, notify.LevelError, h.latest().Level)
	assert.Equal(t, "   ", h.m.input.Value())
	assert.Equal(t, modeAdd, h.m.mode)
}

func TestAdd_RendersServerTask(t *testing.T) {
	h := newHarness(t, "42").start()

	h.press(runes("a"))
	h.typeText("  buy milk ")
	h.press(keyEnter)

	records := h.m.list.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "t1", records[0].ID)
	assert.Equal(t, "buy milk", records[0].Text)
	assert.Equal(t, modeList, h.m.mode)
	assert.Empty(t, h.m.input.Value())
	assert.Equal(t, msgAdded, h.latest().Message)

	tm, ok := h.timerFor(func(msg tea.Msg) bool { _, ok := msg.(toastExpireMsg); return ok })
	require.True(t, ok)
	assert.Equal(t, notify.Lifetime, tm.d)
}

func TestAdd_ServerFailure(t *testing.T) {
	h := newHarness(t, "42").start()
	h.fake.CreateStatus = http.StatusInternalServerError

	h.press(runes("a"))
	h.typeText("buy milk")
	h.press(keyEnter)

	assert.True(t, h.m.list.Empty())
	assert.Equal(t, msgAddFailed, h.latest().Message)
	assert.Equal(t, "buy milk", h.m.input.Value())
}

func TestToggle_HighlightsWhenStillMatching(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "walk", false)
	h.start()

	h.press(keySpace)

	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.True(t, r.Completed)
	assert.True(t, r.Highlight)
	stored, _ := h.fake.Task(id)
	assert.True(t, stored.Completed)
	assert.Equal(t, msgCompleted, h.latest().Message)

	tm, ok := h.timerFor(isHighlight)
	require.True(t, ok)
	assert.Equal(t, tasklist.HighlightDuration, tm.d)
	h.fire(isHighlight)
	r, _ = h.m.list.Get(id)
	assert.False(t, r.Highlight)
}

func TestToggle_LeavingPendingFilterRemovesRow(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultFilter = "pending"
	h := newHarnessWith(t, "42", cfg)
	id := h.fake.AddTask("42", "walk", false)
	h.start()
	require.Equal(t, 1, h.m.list.Len())

	h.press(keySpace)

	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.True(t, r.Removing)
	tm, ok := h.timerFor(isDetach)
	require.True(t, ok)
	assert.Equal(t, tasklist.RemoveDelay, tm.d)

	h.fire(isDetach)
	assert.True(t, h.m.list.Empty())
	assert.Contains(t, h.m.View(), "No tasks yet.")
	stored, _ := h.fake.Task(id)
	assert.True(t, stored.Completed)
}

func TestToggle_FailureRevertsAndReloads(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "walk", false)
	h.start()
	h.fake.UpdateStatus = http.StatusInternalServerError

	h.press(keySpace)

	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.False(t, r.Completed)
	assert.Equal(t, msgToggleFailed, h.latest().Message)
	assert.Equal(t, 2, h.fake.CountRequests(http.MethodGet, "/tasks/user/42"))
}

func TestEdit_CommitSendsTrimmedText(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("e"))
	require.Equal(t, modeEdit, h.m.mode)
	assert.Equal(t, "milk", h.m.edit.Value())
	h.typeText(" and eggs  ")
	h.press(keyEnter)

	r, _ := h.m.list.Get(id)
	assert.Equal(t, tasklist.Viewing, r.State)
	assert.Equal(t, "milk and eggs", r.Text)
	stored, _ := h.fake.Task(id)
	assert.Equal(t, "milk and eggs", stored.Text)
	assert.Equal(t, msgUpdated, h.latest().Message)
}

func TestEdit_FailureRestoresText(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()
	h.fake.UpdateStatus = http.StatusInternalServerError

	h.press(runes("e"))
	h.typeText(" now")
	h.press(keyEnter)

	r, _ := h.m.list.Get(id)
	assert.Equal(t, "milk", r.Text)
	assert.Equal(t, tasklist.Viewing, r.State)
	assert.Equal(t, msgUpdateFailed, h.latest().Message)
}

func TestEdit_FailureAfterToggleRestoresText(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("e"))
	h.typeText(" now")
	pending := h.update(keyEnter)
	require.Equal(t, modeList, h.m.mode)

	h.press(keySpace)
	r, _ := h.m.list.Get(id)
	require.True(t, r.Completed)
	require.Equal(t, msgCompleted, h.latest().Message)

	h.fake.UpdateStatus = http.StatusInternalServerError
	h.run(pending)

	r, _ = h.m.list.Get(id)
	assert.Equal(t, "milk", r.Text)
	assert.True(t, r.Completed)
	assert.Equal(t, msgUpdateFailed, h.latest().Message)
	stored, _ := h.fake.Task(id)
	assert.True(t, stored.Completed)
}

func TestEdit_SendsOnlyText(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", true)
	h.start()

	h.press(runes("e"))
	h.typeText("!")
	h.press(keyEnter)

	var body map[string]any
	for _, req := range h.fake.Requests() {
		if req.Method == http.MethodPut && req.Path == "/tasks/"+id {
			body = req.Body
		}
	}
	require.NotNil(t, body)
	assert.Equal(t, "milk!", body["task"])
	assert.NotContains(t, body, "completed")
}

func TestToggle_SupersededFailureNotifiesAndReloads(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "walk", false)
	h.start()

	pending := h.update(keySpace)
	h.press(keySpace)
	r, _ := h.m.list.Get(id)
	require.False(t, r.Completed)

	h.fake.UpdateStatus = http.StatusInternalServerError
	h.run(pending)

	assert.Equal(t, msgToggleFailed, h.latest().Message)
	assert.Equal(t, 2, h.fake.CountRequests(http.MethodGet, "/tasks/user/42"))
	r, _ = h.m.list.Get(id)
	assert.False(t, r.Completed)
}

func TestToggle_FailureWhileDeletingReverts(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "walk", false)
	h.start()

	toggle := h.update(keySpace)
	del := h.update(runes("d"))
	h.fake.UpdateStatus = http.StatusInternalServerError
	h.fake.DeleteStatus = http.StatusInternalServerError

	h.run(toggle)
	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.False(t, r.Completed)
	assert.Equal(t, msgToggleFailed, h.latest().Message)
	assert.Equal(t, 2, h.fake.CountRequests(http.MethodGet, "/tasks/user/42"))

	h.run(del)
	r, ok = h.m.list.Get(id)
	require.True(t, ok)
	assert.Equal(t, tasklist.Viewing, r.State)
	assert.False(t, r.Completed)
	assert.Equal(t, msgDeleteFailed, h.latest().Message)
}

func TestEdit_DetachedRowLeavesEditMode(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("e"))
	require.Equal(t, modeEdit, h.m.mode)

	h.send(detachMsg{id: id})
	assert.Equal(t, modeList, h.m.mode)
	assert.True(t, h.m.list.Empty())

	h.press(runes("a"))
	assert.Equal(t, modeAdd, h.m.mode)
}

func TestEdit_EmptyTextStaysEditing(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("e"), keyCtrlU)
	require.Empty(t, h.m.edit.Value())
	h.press(keyEnter)

	r, _ := h.m.list.Get(id)
	assert.Equal(t, tasklist.Editing, r.State)
	assert.Equal(t, modeEdit, h.m.mode)
	assert.Equal(t, tasklist.MsgEmptyEdit, h.latest().Message)
	assert.Zero(t, h.fake.CountRequests(http.MethodPut, "/tasks/"+id))
}

func TestEdit_CancelRestores(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("e"))
	h.typeText("zzz")
	h.press(keyEsc)

	r, _ := h.m.list.Get(id)
	assert.Equal(t, "milk", r.Text)
	assert.Equal(t, modeList, h.m.mode)
	assert.Zero(t, h.fake.CountRequests(http.MethodPut, "/tasks/"+id))
}

func TestEdit_LeavingRowCommitsOnlyOnceArmed(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.fake.AddTask("42", "bread", false)
	h.start()

	h.press(runes("e"))
	h.typeText("!")
	tm, ok := h.timerFor(isArm)
	require.True(t, ok)
	assert.Equal(t, tasklist.ArmDelay, tm.d)

	h.press(keyDown)
	assert.Equal(t, modeEdit, h.m.mode)
	assert.Zero(t, h.fake.CountRequests(http.MethodPut, "/tasks/"+id))

	require.Equal(t, 1, h.fire(isArm))
	h.press(keyDown)
	assert.Equal(t, modeList, h.m.mode)
	assert.Equal(t, 1, h.m.cursor)
	stored, _ := h.fake.Task(id)
	assert.Equal(t, "milk!", stored.Text)
}

func TestDelete_DetachesAfterDelay(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("d"))

	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.True(t, r.Removing)
	assert.Contains(t, h.m.View(), "milk")
	_, exists := h.fake.Task(id)
	assert.False(t, exists)
	assert.Equal(t, msgDeleted, h.latest().Message)

	require.Equal(t, 1, h.fire(isDetach))
	assert.True(t, h.m.list.Empty())
	assert.Contains(t, h.m.View(), "No tasks yet.")
}

func TestDelete_FailureRestoresRow(t *testing.T) {
	h := newHarness(t, "42")
	id := h.fake.AddTask("42", "milk", false)
	h.start()
	h.fake.DeleteStatus = http.StatusInternalServerError

	h.press(runes("d"))

	r, ok := h.m.list.Get(id)
	require.True(t, ok)
	assert.Equal(t, tasklist.Viewing, r.State)
	assert.False(t, r.Removing)
	assert.Equal(t, msgDeleteFailed, h.latest().Message)
	_, ok = h.timerFor(isDetach)
	assert.False(t, ok)
}

func TestFilterCycleRefetches(t *testing.T) {
	h := newHarness(t, "42")
	h.fake.AddTask("42", "open", false)
	h.fake.AddTask("42", "closed", true)
	h.start()
	require.Equal(t, 2, h.m.list.Len())

	h.press(runes("f"))
	assert.Equal(t, tasklist.FilterCompleted, h.m.list.Filter())
	records := h.m.list.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "closed", records[0].Text)
	assert.Equal(t, 2, h.fake.CountRequests(http.MethodGet, "/tasks/user/42"))
	assert.Contains(t, h.m.View(), "completed")
}

func TestThemeAndDarkModePersist(t *testing.T) {
	h := newHarness(t, "").start()

	h.press(runes("t"))
	assert.Equal(t, prefs.ThemeDark, h.m.prefs.Theme())
	assert.Equal(t, "dark", h.stored(storage.KeyTheme))
	assert.Equal(t, "true", h.stored(storage.KeyDarkMode))

	h.press(runes("D"))
	assert.False(t, h.m.prefs.DarkMode())
	assert.Equal(t, prefs.ThemeDefault, h.m.prefs.Theme())
	assert.Equal(t, "false", h.stored(storage.KeyDarkMode))
}

func TestLogout(t *testing.T) {
	h := newHarness(t, "42")
	h.fake.AddTask("42", "milk", false)
	h.start()

	h.press(runes("L"))

	assert.Equal(t, screenAuth, h.m.screen)
	assert.True(t, h.m.list.Empty())
	assert.False(t, h.m.sess.IsLoggedIn())
	assert.Equal(t, msgLogoutOK, h.latest().Message)
	assert.False(t, strings.Contains(h.m.View(), "milk"))
}

func TestLogout_FailureKeepsSession(t *testing.T) {
	h := newHarness(t, "42").start()
	h.fake.LogoutStatus = http.StatusInternalServerError

	h.press(runes("L"))

	assert.Equal(t, screenTasks, h.m.screen)
	assert.True(t, h.m.sess.IsLoggedIn())
	assert.Equal(t, msgLogoutFailed, h.latest().Message)
}

func TestToastExpires(t *testing.T) {
	h := newHarness(t, "42").start()
	h.press(runes("a"), keyEnter)
	require.Len(t, h.m.notes.Active(), 1)

	h.fire(func(msg tea.Msg) bool { _, ok := msg.(toastExpireMsg); return ok })
	assert.Empty(t, h.m.notes.Active())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "42").start()
	h.press(runes("q"))
	assert.True(t, h.quit)
}
