package main

import "github.com/charmbracelet/lipgloss"

// Semantic colors, carried over from the test runner's palette so the
// two interactive surfaces feel like one product.
var (
	colorPass   = lipgloss.Color("#10b981")
	colorFail   = lipgloss.Color("#ef4444")
	colorWarn   = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorMuted  = lipgloss.Color("#9ca3af")
	colorAccent = lipgloss.Color("#3b82f6")
	colorBorder = lipgloss.Color("#374151")
)

// styles holds the lipgloss styles the REPL model renders with.
type styles struct {
	Prompt  lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warn    lipgloss.Style
	Dim     lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Border  lipgloss.Style
	Banner  lipgloss.Style

	SymbolPass string
	SymbolFail string
	SymbolWarn string
}

func defaultStyles() *styles {
	return &styles{
		Prompt: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Pass:   lipgloss.NewStyle().Foreground(colorPass).Bold(true),
		Fail:   lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Warn:   lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
		Dim:    lipgloss.NewStyle().Foreground(colorDim),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted),
		Bold:   lipgloss.NewStyle().Bold(true),
		Border: lipgloss.NewStyle().Foreground(colorBorder),
		Banner: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),

		SymbolPass: "✓",
		SymbolFail: "✗",
		SymbolWarn: "!",
	}
}
