package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/api"
)

type formKind int

const (
	formNone formKind = iota
	formLogin
	formSignup
	formForgot
)

func (f formKind) title() string {
	switch f {
	case formLogin:
		return "Log in"
	case formSignup:
		return "Sign up"
	case formForgot:
		return "Forgot password"
	}
	return ""
}

type loginDoneMsg struct {
	userID string
	err    error
}

type signupDoneMsg struct {
	email string
	err   error
}

type forgotDoneMsg struct {
	message string
	err     error
}

type logoutDoneMsg struct{ err error }

const (
	msgLoginOK      = "Login successful! Welcome back."
	msgLoginFailed  = "Login failed. Check your credentials."
	msgSignupOK     = "Signup successful! Please log in."
	msgSignupFailed = "Signup failed"
	msgForgotOK     = "If that account exists, a reset link has been sent."
	msgForgotFailed = "Failed to process password reset request"
	msgLogoutOK     = "Logged out successfully!"
	msgLogoutFailed = "Logout failed"
)

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != formNone {
		return m.updateForm(msg)
	}
	k := m.keys
	switch {
	case m.matches(msg, k.Quit):
		return m, tea.Quit
	case m.matches(msg, k.Login):
		cmd := m.openForm(formLogin, "")
		return m, cmd
	case m.matches(msg, k.Signup):
		cmd := m.openForm(formSignup, "")
		return m, cmd
	case m.matches(msg, k.Forgot):
		cmd := m.openForm(formForgot, "")
		return m, cmd
	case m.matches(msg, k.Theme):
		return m.cycleTheme()
	case m.matches(msg, k.DarkMode):
		return m.toggleDark()
	}
	return m, nil
}

// openForm shows form f with the email field focused and seeded with email.
func (m *Model) openForm(f formKind, email string) tea.Cmd {
	m.form = f
	m.field = 0
	m.email.SetValue(email)
	m.email.CursorEnd()
	m.password.Reset()
	m.password.EchoMode = textinput.EchoPassword
	m.password.Blur()
	if email != "" && f != formForgot {
		m.field = 1
		m.email.Blur()
		return m.password.Focus()
	}
	return m.email.Focus()
}

func (m *Model) closeForm() {
	m.form = formNone
	m.field = 0
	m.email.Blur()
	m.email.Reset()
	m.password.Blur()
	m.password.Reset()
}

func (m Model) fieldCount() int {
	if m.form == formForgot {
		return 1
	}
	return 2
}

func (m *Model) focusField(i int) tea.Cmd {
	n := m.fieldCount()
	m.field = ((i % n) + n) % n
	if m.field == 0 {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case m.matches(msg, k.Cancel):
		m.closeForm()
		return m, nil
	case m.matches(msg, k.NextField):
		cmd := m.focusField(m.field + 1)
		return m, cmd
	case m.matches(msg, k.PrevField):
		cmd := m.focusField(m.field - 1)
		return m, cmd
	case m.matches(msg, k.ShowSecret):
		if m.password.EchoMode == textinput.EchoPassword {
			m.password.EchoMode = textinput.EchoNormal
		} else {
			m.password.EchoMode = textinput.EchoPassword
		}
		return m, nil
	case m.matches(msg, k.Confirm):
		cmd := m.submitForm()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.field == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitForm() tea.Cmd {
	ctx, svc := m.ctx, m.auth
	email, password := m.email.Value(), m.password.Value()
	var call tea.Cmd
	switch m.form {
	case formLogin:
		call = func() tea.Msg {
			id, err := svc.Login(ctx, email, password)
			return loginDoneMsg{userID: id, err: err}
		}
	case formSignup:
		call = func() tea.Msg {
			return signupDoneMsg{email: strings.TrimSpace(email), err: svc.Signup(ctx, email, password)}
		}
	case formForgot:
		call = func() tea.Msg {
			text, err := svc.ForgotPassword(ctx, email)
			return forgotDoneMsg{message: text, err: err}
		}
	default:
		return nil
	}
	return tea.Batch(m.begin(), call)
}

func (m Model) logoutCmd() tea.Cmd {
	ctx, svc := m.ctx, m.auth
	return func() tea.Msg {
		return logoutDoneMsg{err: svc.Logout(ctx)}
	}
}

// failureText prefers a validation or server message over fallback.
func failureText(err error, fallback string) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return fallback
}

func (m Model) onLogin(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		text := msgLoginFailed
		if api.IsValidation(msg.err) {
			text = api.Message(msg.err)
		}
		return m, m.notifyError(text)
	}
	m.closeForm()
	m.screen = screenTasks
	m.mode = modeList
	m.cursor = 0
	m.list.Reset()
	refresh := m.refresh()
	return m, tea.Batch(m.notifySuccess(msgLoginOK), refresh)
}

func (m Model) onSignup(msg signupDoneMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		return m, m.notifyError(failureText(msg.err, msgSignupFailed))
	}
	focus := m.openForm(formLogin, msg.email)
	return m, tea.Batch(m.notifySuccess(msgSignupOK), focus)
}

func (m Model) onForgot(msg forgotDoneMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		text := msgForgotFailed
		if api.IsValidation(msg.err) {
			text = api.Message(msg.err)
		}
		return m, m.notifyError(text)
	}
	m.closeForm()
	text := msg.message
	if text == "" {
		text = msgForgotOK
	}
	return m, m.notifySuccess(text)
}

func (m Model) onLogout(msg logoutDoneMsg) (tea.Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		return m, m.notifyError(msgLogoutFailed)
	}
	m.toLoggedOut()
	return m, m.notifySuccess(msgLogoutOK)
}

func (m Model) renderAuth() string {
	var b strings.Builder
	if m.form == formNone {
		b.WriteString("You are logged out.\n\n")
		k := m.cfg.Keys
		b.WriteString(m.styles.label.Render("[" + k.Login + "]"))
		b.WriteString(" log in   ")
		b.WriteString(m.styles.label.Render("[" + k.Signup + "]"))
		b.WriteString(" sign up   ")
		b.WriteString(m.styles.label.Render("[" + k.Forgot + "]"))
		b.WriteString(" forgot password\n")
		return b.String()
	}

	b.WriteString(m.styles.title.Render(m.form.title()))
	b.WriteString("\n\n")
	b.WriteString(m.fieldLine("email", m.email.View(), m.field == 0))
	if m.form != formForgot {
		b.WriteString(m.fieldLine("password", m.password.View(), m.field == 1))
	}
	if m.form == formSignup {
		b.WriteString(m.styles.muted.Render("8+ characters with an uppercase letter, a digit and one of @#$&*!"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) fieldLine(label, view string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = m.styles.cursor.Render("> ")
	}
	return prefix + m.styles.label.Render(label+": ") + view + "\n"
}
