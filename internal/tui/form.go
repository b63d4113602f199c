package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formLogin formKind = iota
	formSignUp
)

func (k formKind) title() string {
	if k == formSignUp {
		return "Sign up"
	}
	return "Log in"
}

type formField struct {
	label string
	input textinput.Model
}

// authForm collects credentials for logging in or signing up
type authForm struct {
	kind   formKind
	fields []formField
	focus  int
}

func newAuthForm(kind formKind) authForm {
	labels := []string{"Name", "Password"}
	if kind == formSignUp {
		labels = []string{"Name", "Email", "Password", "Confirm"}
	}

	f := authForm{kind: kind}
	for _, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		if label == "Password" || label == "Confirm" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.fields = append(f.fields, formField{label: label, input: in})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *authForm) value(label string) string {
	for _, field := range f.fields {
		if field.label == label {
			return field.input.Value()
		}
	}
	return ""
}

func (f *authForm) setFocus(i int) {
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// focusField moves focus to the input that reported a field error and
// reports whether one matched
func (f *authForm) focusField(field string) bool {
	label, ok := fieldLabels[field]
	if !ok {
		return false
	}
	for i := range f.fields {
		if f.fields[i].label == label {
			f.setFocus(i)
			return true
		}
	}
	return false
}

var fieldLabels = map[string]string{
	"name":     "Name",
	"username": "Name",
	"email":    "Email",
	"password": "Password",
	"confirm":  "Confirm",
}

func (f *authForm) next() { f.setFocus(f.focus + 1) }
func (f *authForm) prev() { f.setFocus(f.focus - 1) }

// last reports whether the focused field is the final one
func (f *authForm) last() bool {
	return f.focus == len(f.fields)-1
}

func (f authForm) update(msg tea.Msg) (authForm, tea.Cmd) {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f authForm) view(s Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(f.kind.title()))
	sb.WriteString("\n\n")
	for i, field := range f.fields {
		label := s.Label.Render(field.label)
		if i == f.focus {
			label = s.Focused.Render(field.label)
		}
		sb.WriteString(label + field.input.View() + "\n")
	}
	return sb.String()
}
