// Package ui holds the lipgloss styles shared by the help catalog and the
// interactive banner.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette, chosen for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorHighlight is blue, used for category headers.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorMuted is gray, used for hints.
	ColorMuted = lipgloss.Color("#6B7280")
)

// Theme renders text for one output writer. The renderer detects the
// writer's color profile, so pipes and buffers receive plain text.
type Theme struct {
	enabled bool
	title   lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
}

// NewTheme creates a Theme bound to w. When color is false every render
// returns its input unchanged.
func NewTheme(w io.Writer, color bool) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		enabled: color,
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		header:  r.NewStyle().Bold(true).Foreground(ColorHighlight),
		muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// Plain returns a Theme that never styles.
func Plain() Theme {
	return Theme{}
}

// Title renders a banner title.
func (t Theme) Title(s string) string { return t.render(t.title, s) }

// Header renders a help category header.
func (t Theme) Header(s string) string { return t.render(t.header, s) }

// Muted renders secondary hint text.
func (t Theme) Muted(s string) string { return t.render(t.muted, s) }

func (t Theme) render(style lipgloss.Style, s string) string {
	if !t.enabled {
		return s
	}
	return style.Render(s)
}
