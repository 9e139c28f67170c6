package ui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles for one theme.
type styles struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Row       lipgloss.Style
	Indicator lipgloss.Style
	Errored   lipgloss.Style
	Muted     lipgloss.Style
	Footer    lipgloss.Style
}

func newStyles(theme string) styles {
	accent := lipgloss.Color("6")
	warn := lipgloss.Color("3")
	danger := lipgloss.Color("1")
	muted := lipgloss.Color("8")
	if theme == "mono" {
		accent, warn, danger = "", "", ""
	}
	return styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Row:       lipgloss.NewStyle(),
		Indicator: lipgloss.NewStyle().Bold(true).Foreground(warn),
		Errored:   lipgloss.NewStyle().Foreground(danger),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Footer:    lipgloss.NewStyle().Foreground(muted),
	}
}
