package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hueareyou/internal/engine"
	"hueareyou/internal/palette"
	"hueareyou/internal/results"
)

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Hue Are You"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Help.Render(m.sessionLine()))
	sb.WriteString("\n\n")

	if m.screen == screenForm {
		sb.WriteString(m.form.view(m.styles))
		sb.WriteString("\n")
		sb.WriteString(m.footer("tab next field • enter submit • esc back"))
		return sb.String()
	}

	eng := m.flow.Engine()
	switch eng.Phase() {
	case engine.PhaseStart:
		sb.WriteString(fmt.Sprintf("Give each of %d words the color it feels like.\n\n", eng.Len()))
		sb.WriteString(m.footer("enter start • l log in • u sign up • o log out • q quit"))
	case engine.PhaseSelecting:
		sb.WriteString(m.selectingView())
		sb.WriteString(m.footer("1-9 0 - or color initial choose • ← previous • s skip"))
	case engine.PhaseResult:
		sb.WriteString(m.resultView())
		help := "enter save • esc leave name field"
		if !m.nameInput.Focused() {
			help = "e edit name • r restart • l log in • u sign up • o log out • q quit"
		}
		sb.WriteString(m.footer(help))
	}
	return sb.String()
}

func (m Model) sessionLine() string {
	sess := m.flow.Session()
	if !sess.Authenticated() {
		return "not logged in"
	}
	if sess.IsAdmin() {
		return sess.Username() + " (admin)"
	}
	return sess.Username()
}

func (m Model) footer(help string) string {
	var sb strings.Builder
	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n")
	}
	if m.busy() {
		help = "esc cancel"
	}
	sb.WriteString(m.styles.Help.Render(help))
	return sb.String()
}

func (m Model) selectingView() string {
	eng := m.flow.Engine()
	current, _ := eng.Current()

	var sb strings.Builder
	sb.WriteString(m.styles.Help.Render(fmt.Sprintf("%d / %d", eng.Cursor()+1, eng.Len())))
	sb.WriteString("\n")

	word := m.styles.Word
	if c, ok := current.Selection.Get(); ok {
		word = word.BorderForeground(lipgloss.Color(c.Hex()))
	}
	sb.WriteString(word.Render(current.Word))
	sb.WriteString("\n\n")

	legend := palette.Entries()
	chips := make([]string, 0, len(legend))
	for _, e := range legend {
		chips = append(chips, swatch(e.Color, fmt.Sprintf("%s %s", keyHint(e.Color), e.Color)))
	}
	half := (len(chips) + 1) / 2
	sb.WriteString(strings.Join(chips[:half], " "))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(chips[half:], " "))
	sb.WriteString("\n\n")
	return sb.String()
}

func (m Model) resultView() string {
	var sb strings.Builder
	summary, _ := m.flow.Summary()
	sb.WriteString(RenderSummary(summary))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Box.Render(m.nameInput.View()))
	sb.WriteString("\n\n")
	return sb.String()
}

// RenderSummary lists each color group with its words
func RenderSummary(summary results.Summary) string {
	if summary.Total == 0 {
		return "No word was colored.\n"
	}
	var sb strings.Builder
	for _, g := range summary.Groups {
		sb.WriteString(swatch(g.Color, fmt.Sprintf("%s %d", g.Color, g.Count)))
		sb.WriteString(" ")
		sb.WriteString(strings.Join(g.Words, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}
