// Package tui hosts a classification run in the terminal.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hueareyou/internal/api"
	"hueareyou/internal/app"
	"hueareyou/internal/client"
	"hueareyou/internal/engine"
	"hueareyou/internal/models"
	"hueareyou/internal/validation"
)

const defaultTimeout = 15 * time.Second

type screen int

const (
	screenRun screen = iota
	screenForm
)

type saveDoneMsg struct {
	id  int
	err error
}

type authDoneMsg struct {
	id      int
	kind    formKind
	session models.Session
	err     error
}

// Model is the bubbletea model for one terminal session. It owns the flow's engine: the
// engine is only touched from Update, and keys that change it are ignored while a
// request is in flight.
type Model struct {
	flow    *app.Flow
	styles  Styles
	timeout time.Duration

	screen    screen
	form      authForm
	nameInput textinput.Model

	// cancel aborts the in-flight request; nil when idle
	cancel context.CancelFunc
	reqID  int

	status string
	errMsg string
	width  int
}

// New creates a model over flow. timeout bounds each network request; zero uses a default.
func New(flow *app.Flow, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = validation.MaxNameLength
	name.Prompt = "Name: "

	return Model{
		flow:      flow,
		styles:    DefaultStyles(),
		timeout:   timeout,
		nameInput: name,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) busy() bool {
	return m.cancel != nil
}

func (m *Model) beginRequest() (context.Context, int) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.reqID++
	m.cancel = cancel
	m.errMsg = ""
	return ctx, m.reqID
}

// abort cancels the in-flight request. Its result, when it arrives, is dropped.
func (m *Model) abort() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.reqID++
	m.status = ""
}

func (m *Model) finish(id int) bool {
	if id != m.reqID || m.cancel == nil {
		return false
	}
	m.cancel()
	m.cancel = nil
	return true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.nameInput.Width = max(msg.Width-10, 10)
		return m, nil

	case saveDoneMsg:
		return m.handleSaveDone(msg), nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.abort()
			return m, tea.Quit
		}
		if m.screen == screenForm {
			return m.updateForm(msg)
		}
		return m.updateRun(msg)
	}

	if m.screen == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateRun(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.flow.Engine()
	key := msg.String()

	if key == "esc" && m.busy() {
		m.abort()
		return m, nil
	}

	switch eng.Phase() {
	case engine.PhaseStart:
		switch key {
		case "enter", " ":
			if err := eng.Start(); err != nil {
				m.errMsg = err.Error()
			}
			m.status = ""
		case "q":
			return m, tea.Quit
		case "l":
			return m.openForm(formLogin)
		case "u":
			return m.openForm(formSignUp)
		case "o":
			m.logout()
		}
		return m, nil

	case engine.PhaseSelecting:
		switch key {
		case "left", "backspace":
			eng.Previous()
		case "s":
			_ = eng.Skip()
		default:
			if c, ok := colorForKey(key); ok {
				_ = eng.Choose(c)
			}
		}
		if eng.Phase() == engine.PhaseResult {
			m.errMsg = ""
			return m, m.nameInput.Focus()
		}
		return m, nil

	case engine.PhaseResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.nameInput.Focused() {
		switch key {
		case "enter":
			return m.submitSave()
		case "esc":
			m.nameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	if m.busy() {
		return m, nil
	}

	switch key {
	case "r":
		m.flow.Engine().Restart()
		m.nameInput.Reset()
		m.status, m.errMsg = "", ""
	case "l":
		return m.openForm(formLogin)
	case "u":
		return m.openForm(formSignUp)
	case "o":
		m.logout()
	case "enter", "e":
		return m, m.nameInput.Focus()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) logout() {
	if !m.flow.Session().Authenticated() {
		return
	}
	m.flow.Session().Logout()
	m.status, m.errMsg = "Logged out.", ""
}

func (m Model) submitSave() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	if !m.flow.Session().Authenticated() {
		next, cmd := m.openForm(formLogin)
		next.errMsg = describeError(app.ErrNotAuthenticated)
		return next, cmd
	}

	ctx, id := m.beginRequest()
	m.status = "Saving..."
	flow, name := m.flow, m.nameInput.Value()
	return m, func() tea.Msg {
		return saveDoneMsg{id: id, err: flow.Save(ctx, name)}
	}
}

func (m Model) handleSaveDone(msg saveDoneMsg) Model {
	if !m.finish(msg.id) {
		return m
	}
	m.status = ""
	if msg.err != nil {
		if !client.IsCanceled(msg.err) {
			m.errMsg = describeError(msg.err)
		}
		return m
	}
	m.status = "Saved."
	m.nameInput.Blur()
	return m
}

func (m Model) openForm(kind formKind) (Model, tea.Cmd) {
	m.screen = screenForm
	m.form = newAuthForm(kind)
	m.nameInput.Blur()
	m.errMsg = ""
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.busy() {
			m.abort()
			return m, nil
		}
		m.screen = screenRun
		m.errMsg = ""
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "enter":
		if !m.form.last() {
			m.form.next()
			return m, nil
		}
		return m.submitForm()
	}

	if m.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	ctx, id := m.beginRequest()
	sess := m.flow.Session()
	f := m.form

	if f.kind == formSignUp {
		m.status = "Signing up..."
		return m, func() tea.Msg {
			s, err := sess.SignUp(ctx, f.value("Name"), f.value("Email"), f.value("Password"), f.value("Confirm"))
			return authDoneMsg{id: id, kind: formSignUp, session: s, err: err}
		}
	}

	m.status = "Logging in..."
	return m, func() tea.Msg {
		s, err := sess.Login(ctx, f.value("Name"), f.value("Password"))
		return authDoneMsg{id: id, kind: formLogin, session: s, err: err}
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if !m.finish(msg.id) {
		return m, nil
	}
	m.status = ""
	if msg.err != nil {
		if client.IsCanceled(msg.err) {
			return m, nil
		}
		m.errMsg = describeError(msg.err)
		if apiErr, ok := client.AsAPIError(msg.err); ok && apiErr.Code == api.CodeDuplicateAccount {
			m.errMsg = duplicateHint(apiErr.Field)
			m.form.focusField(apiErr.Field)
		} else if ve, ok := validation.AsValidationError(msg.err); ok {
			m.form.focusField(ve.Field)
		}
		return m, nil
	}

	m.screen = screenRun
	m.errMsg = ""
	m.status = "Logged in as " + msg.session.Username + "."
	if m.flow.Engine().Phase() == engine.PhaseResult && !m.flow.Saved() {
		return m, m.nameInput.Focus()
	}
	return m, nil
}

func duplicateHint(field string) string {
	switch field {
	case "email":
		return "That email is already registered, log in instead."
	case "name":
		return "That name is taken, choose another one."
	}
	return "An account with these details already exists."
}

// describeError turns a flow error into a line for the status bar
func describeError(err error) string {
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.Message
	}
	switch {
	case errors.Is(err, app.ErrNothingToSave):
		return "Nothing to save: no word was colored."
	case errors.Is(err, app.ErrNotAuthenticated):
		return "Log in or sign up to save your result."
	case errors.Is(err, app.ErrSaveInProgress):
		return "A save is already in progress."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to answer."
	}
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Message
	}
	var te *client.TransportError
	if errors.As(err, &te) {
		return "Could not reach the server: " + te.Err.Error()
	}
	return err.Error()
}
