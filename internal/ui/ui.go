package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/api"
	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/notify"
	"taskpad/internal/prefs"
	"taskpad/internal/session"
	"taskpad/internal/tasklist"
)

type screen int

const (
	screenAuth screen = iota
	screenTasks
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// TaskClient is the part of the API the task screen calls.
type TaskClient interface {
	CreateTask(ctx context.Context, text, userID string) (api.Task, error)
	ListTasks(ctx context.Context, userID string) ([]api.Task, error)
	UpdateTask(ctx context.Context, id string, patch api.TaskPatch) error
	DeleteTask(ctx context.Context, id string) error
}

type Deps struct {
	Ctx    context.Context
	Client TaskClient
	Auth   *auth.Service
	Prefs  *prefs.Prefs
	Config config.Config
	Logger *slog.Logger
}

type Model struct {
	ctx    context.Context
	client TaskClient
	auth   *auth.Service
	sess   *session.Session
	prefs  *prefs.Prefs
	cfg    config.Config
	logger *slog.Logger

	list  *tasklist.List
	notes *notify.Center

	screen screen
	mode   mode
	form   formKind
	cursor int

	input    textinput.Model
	edit     textinput.Model
	email    textinput.Model
	password textinput.Model
	field    int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	pending    int
	refreshSeq uint64

	// after schedules msg to be delivered once d has passed.
	after func(d time.Duration, msg tea.Msg) tea.Cmd
}

func New(d Deps) Model {
	ctx := d.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	ei := textinput.New()
	ei.CharLimit = 256
	ei.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.Width = 40

	pw := textinput.New()
	pw.Placeholder = "password"
	pw.EchoMode = textinput.EchoPassword
	pw.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		client:   d.Client,
		auth:     d.Auth,
		sess:     d.Auth.Session(),
		prefs:    d.Prefs,
		cfg:      d.Config,
		logger:   logger,
		list:     tasklist.New(tasklist.ParseFilter(d.Config.DefaultFilter)),
		notes:    notify.NewCenter(),
		input:    ti,
		edit:     ei,
		email:    email,
		password: pw,
		keys:     newKeyMap(d.Config.Keys),
		help:     help.New(),
		spinner:  sp,
		styles:   newStyles(d.Prefs.Theme(), d.Prefs.DarkMode()),
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
	}
	if m.sess.IsLoggedIn() {
		m.screen = screenTasks
		m.refreshSeq = 1
		m.pending = 1
	}
	return m
}

func Run(d Deps) error {
	program := tea.NewProgram(New(d), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.screen != screenTasks {
		return nil
	}
	return tea.Batch(m.fetchTasks(m.refreshSeq, m.sess.UserID()), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenAuth {
			return m.updateAuth(msg)
		}
		return m.updateTasks(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		m.edit.Width = max(msg.Width-14, 10)
		return m, nil
	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case toastExpireMsg:
		m.notes.Expire(msg.id)
		m.notes.Prune()
		return m, nil

	case tasksLoadedMsg:
		return m.onTasksLoaded(msg)
	case taskCreatedMsg:
		return m.onTaskCreated(msg)
	case toggledMsg:
		return m.onToggled(msg)
	case editedMsg:
		return m.onEdited(msg)
	case deletedMsg:
		return m.onDeleted(msg)
	case detachMsg:
		m.list.Detach(msg.id)
		if m.mode == modeEdit && m.list.Editing() == "" {
			m.leaveEditMode()
		}
		m.cursor = clampCursor(m.cursor, m.list.Len())
		return m, nil
	case highlightDoneMsg:
		m.list.ClearHighlight(msg.id, msg.seq)
		return m, nil
	case armOutsideMsg:
		m.list.ArmOutside(msg.id, msg.token)
		return m, nil

	case loginDoneMsg:
		return m.onLogin(msg)
	case signupDoneMsg:
		return m.onSignup(msg)
	case forgotDoneMsg:
		return m.onForgot(msg)
	case logoutDoneMsg:
		return m.onLogout(msg)
	}
	// cursor blinks and the like go to whichever input has focus
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == screenAuth && m.form != formNone && m.field == 0:
		m.email, cmd = m.email.Update(msg)
	case m.screen == screenAuth && m.form != formNone:
		m.password, cmd = m.password.Update(msg)
	case m.mode == modeAdd:
		m.input, cmd = m.input.Update(msg)
	case m.mode == modeEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Taskpad"))
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("  theme:%s%s", m.prefs.Theme(), darkLabel(m.prefs.DarkMode()))))
	if m.pending > 0 {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	if m.screen == screenAuth {
		b.WriteString(m.renderAuth())
	} else {
		b.WriteString(m.renderTasks())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.helpBindings()))
	return b.String()
}

func (m Model) renderToasts() string {
	var lines []string
	for _, t := range m.notes.Active() {
		if t.Level == notify.LevelError {
			lines = append(lines, m.styles.errorMsg.Render("✗ "+t.Message))
		} else {
			lines = append(lines, m.styles.success.Render("✓ "+t.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) notifySuccess(msg string) tea.Cmd {
	t := m.notes.Success(msg)
	return m.after(notify.Lifetime, toastExpireMsg{id: t.ID})
}

func (m Model) notifyError(msg string) tea.Cmd {
	t := m.notes.Error(msg)
	return m.after(notify.Lifetime, toastExpireMsg{id: t.ID})
}

// begin counts a request in flight and starts the spinner if it was idle.
func (m *Model) begin() tea.Cmd {
	m.pending++
	if m.pending == 1 {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m Model) matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

func (m *Model) applyPrefs() {
	m.styles = newStyles(m.prefs.Theme(), m.prefs.DarkMode())
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	if err := m.prefs.SetTheme(m.prefs.NextTheme()); err != nil {
		m.logger.Error("save theme", "error", err)
		return m, m.notifyError("Failed to save theme")
	}
	m.applyPrefs()
	return m, nil
}

func (m Model) toggleDark() (tea.Model, tea.Cmd) {
	if err := m.prefs.SetDarkMode(!m.prefs.DarkMode()); err != nil {
		m.logger.Error("save dark mode", "error", err)
		return m, m.notifyError("Failed to save dark mode")
	}
	m.applyPrefs()
	return m, nil
}

func darkLabel(on bool) string {
	if on {
		return " (dark)"
	}
	return ""
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
