package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	gql "github.com/iso-gql/gqlfront"
	"github.com/iso-gql/gqlfront/lexer"
	"github.com/iso-gql/gqlfront/validator"
)

// entry is one submitted line and its rendered result, kept so the
// scrollback reads like a normal REPL transcript.
type entry struct {
	input    string
	rendered string
}

// model is the bubbletea model driving the REPL: a single-line input
// box plus a scrolling transcript of past statements and their
// diagnostics. Grounded on runner/tui.go's Model/Update/View split;
// narrowed to one input line instead of an animated test tree, since a
// REPL has no background progress to animate.
type model struct {
	input   textinput.Model
	styles  *styles
	history []entry

	newValidator func() *validator.SemanticValidator

	width  int
	height int

	quitting bool
}

func newModel(newValidator func() *validator.SemanticValidator) *model {
	ti := textinput.New()
	ti.Placeholder = "MATCH (n) RETURN n;"
	ti.Prompt = "gql> "
	ti.Focus()
	ti.CharLimit = 4096

	return &model{
		input:        ti,
		styles:       defaultStyles(),
		newValidator: newValidator,
		width:        80,
		height:       24,
	}
}

func (m *model) Init() tea.Cmd { //nolint:ireturn // bubbletea.Model interface
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // bubbletea.Model interface
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true

			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}

			if line == "\\q" || line == "\\quit" {
				m.quitting = true

				return m, tea.Quit
			}

			m.history = append(m.history, entry{input: line, rendered: m.evaluate(line)})
			m.input.SetValue("")

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// evaluate tokenizes, parses, and validates one statement, rendering
// its diagnostics the way cmd/gqlc's parse command does, styled instead
// of plain-text.
func (m *model) evaluate(source string) string {
	v := m.newValidator()

	_, diags, outcome := validator.ParseAndValidate(source, v)

	if len(diags) == 0 {
		return m.styles.Pass.Render(m.styles.SymbolPass + " ok")
	}

	var b strings.Builder

	for _, d := range diags {
		pos := lexer.Locate(source, d.Span.Start)

		symbol, style := m.styles.SymbolFail, m.styles.Fail
		if d.Severity == gql.SeverityWarning {
			symbol, style = m.styles.SymbolWarn, m.styles.Warn
		}

		b.WriteString(style.Render(fmt.Sprintf("%s %d:%d %s", symbol, pos.Line, pos.Column, d.Message)))
		b.WriteString("\n")
	}

	if outcome.IsSuccess() {
		b.WriteString(m.styles.Dim.Render("  (warnings only, statement accepted)"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Banner.Render("gql-repl — type a statement, Enter to validate, \\q to quit") + "\n\n")

	for _, e := range m.history {
		b.WriteString(m.styles.Bold.Render("gql> " + e.input) + "\n")
		b.WriteString(e.rendered + "\n\n")
	}

	b.WriteString(m.input.View())

	return b.String()
}
