package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/edgard/arabictutor/internal/theme"
)

type palette struct {
	fg, muted, accent, user, bot, danger, border lipgloss.Color
}

var (
	lightPalette = palette{
		fg:     lipgloss.Color("235"),
		muted:  lipgloss.Color("245"),
		accent: lipgloss.Color("25"),
		user:   lipgloss.Color("24"),
		bot:    lipgloss.Color("28"),
		danger: lipgloss.Color("160"),
		border: lipgloss.Color("250"),
	}
	darkPalette = palette{
		fg:     lipgloss.Color("252"),
		muted:  lipgloss.Color("241"),
		accent: lipgloss.Color("111"),
		user:   lipgloss.Color("117"),
		bot:    lipgloss.Color("150"),
		danger: lipgloss.Color("203"),
		border: lipgloss.Color("238"),
	}
)

type styles struct {
	theme    theme.Theme
	header   lipgloss.Style
	help     lipgloss.Style
	user     lipgloss.Style
	bot      lipgloss.Style
	text     lipgloss.Style
	chatBox  lipgloss.Style
	popup    lipgloss.Style
	errPopup lipgloss.Style
	status   lipgloss.Style
	form     *huh.Theme
}

func newStyles(t theme.Theme) styles {
	p := lightPalette
	form := huh.ThemeBase()
	if t == theme.Dark {
		p = darkPalette
		form = huh.ThemeDracula()
	}

	return styles{
		theme:   t,
		header:  lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		help:    lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		user:    lipgloss.NewStyle().Bold(true).Foreground(p.user),
		bot:     lipgloss.NewStyle().Bold(true).Foreground(p.bot),
		text:    lipgloss.NewStyle().Foreground(p.fg),
		chatBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border),
		popup: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Foreground(p.fg).
			Padding(1, 3),
		errPopup: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.danger).
			Foreground(p.danger).
			Padding(1, 3),
		status: lipgloss.NewStyle().Foreground(p.muted).Italic(true).Padding(0, 1),
		form:   form,
	}
}
