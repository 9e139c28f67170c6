package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/enferex/treetop/internal/state"
)

const (
	titleText   = "}-= treetop =-{"
	selectMark  = "--> "
	placeholder = "Updating..."
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting treetop..."
	}

	title := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.Title.Render(titleText))

	var body string
	if d := m.snap.Detail; d >= 0 && d < len(m.snap.Files) {
		body = m.detailBody(d)
	} else {
		body = m.listBody()
	}

	footer := m.styles.Footer.Render("k/↑ up · j/↓ down · enter detail · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

func (m Model) listBody() string {
	innerW, innerH := m.innerSize()

	if len(m.snap.Files) == 0 {
		empty := m.styles.Muted.Render("watch list is empty")
		return m.frame(lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, empty))
	}

	nameW := 0
	for _, f := range m.snap.Files {
		if w := lipgloss.Width(f.Name); w > nameW {
			nameW = w
		}
	}

	rows := make([]string, 0, len(m.snap.Files))
	for i, f := range m.snap.Files {
		rows = append(rows, m.renderRow(i, f, nameW, innerW))
	}
	return m.frame(lipgloss.NewStyle().Height(innerH).Render(strings.Join(rows, "\n")))
}

func (m Model) renderRow(i int, f state.FileView, nameW, innerW int) string {
	mark := strings.Repeat(" ", len(selectMark))
	if i == m.cursor {
		mark = selectMark
	}

	indicator := " "
	switch {
	case f.Errored:
		indicator = m.styles.Errored.Render("!")
	case f.Updated:
		indicator = m.styles.Indicator.Render(m.indicator)
	}

	desc := f.LastLine
	switch {
	case f.Errored:
		desc = "(unavailable)"
	case desc == "" && f.Tail == "":
		desc = placeholder
	}
	desc = truncate(desc, innerW-len(mark)-nameW-4)

	// Pad by display width, not bytes, so multi-byte names keep the
	// description column aligned.
	name := f.Name + strings.Repeat(" ", nameW-lipgloss.Width(f.Name))
	if i == m.cursor {
		name = m.styles.Selected.Render(name)
	} else {
		name = m.styles.Row.Render(name)
	}

	return mark + indicator + " " + name + "  " + m.styles.Muted.Render(desc)
}

func (m Model) detailBody(i int) string {
	f := m.snap.Files[i]
	header := m.styles.Selected.Render("[" + f.Name + "]")
	return m.frame(lipgloss.JoinVertical(lipgloss.Left, header, m.detailView.View()))
}

func (m Model) frame(content string) string {
	w := m.width - 2
	h := m.height - 4
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return m.styles.Frame.Width(w).Height(h).Render(content)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
