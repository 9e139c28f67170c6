package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/enferex/treetop/internal/prefs"
	"github.com/enferex/treetop/internal/state"
	"github.com/enferex/treetop/internal/watch"
)

// RefreshMsg is posted by the watcher whenever shared state changed.
type RefreshMsg struct{}

// Options configures the UI.
type Options struct {
	Store    *state.Store
	Controls chan<- watch.Event
	Prefs    prefs.Prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	store    *state.Store
	controls chan<- watch.Event
	keys     keyMap
	styles   styles

	indicator string
	cursor    int
	snap      state.Snapshot

	detailView viewport.Model

	width  int
	height int
	ready  bool
	seeded bool
}

// New creates the root model.
func New(opts Options) Model {
	var snap state.Snapshot
	if opts.Store != nil {
		snap = opts.Store.Snapshot()
	}
	return Model{
		store:     opts.Store,
		controls:  opts.Controls,
		keys:      DefaultKeyMap(),
		styles:    newStyles(opts.Prefs.Theme),
		indicator: opts.Prefs.Indicator,
		snap:      snap,
	}
}

// Init implements tea.Model. Refreshes are driven by the watcher through
// Program.Send, so there is no initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil
	case RefreshMsg:
		return m.refresh(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) resize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	innerW, innerH := m.innerSize()
	m.detailView.Width = innerW
	m.detailView.Height = innerH

	m.store.SetSize(msg.Width, msg.Height)
	m.store.SetBudget(innerW * innerH)
	m.sendControl(watch.Event{Kind: watch.Resized})
	return m
}

func (m Model) refresh() Model {
	m.snap = m.store.Snapshot()
	if !m.seeded {
		// The first pass extracts every file; that baseline is not a
		// change the operator needs flagged.
		m.store.AcknowledgeAll()
		for i := range m.snap.Files {
			m.snap.Files[i].Updated = false
		}
		m.seeded = true
	}
	m = m.acknowledgeVisible()
	m = m.syncDetail()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1), nil
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleDetail(), nil
	default:
		// Any unrecognized key closes an open detail view.
		if m.snap.Detail != state.NoDetail {
			m.sendControl(watch.Event{Kind: watch.HideDetail})
		}
		return m, nil
	}
}

// moveCursor shifts the selection by delta without wrapping past either
// end of the list.
func (m Model) moveCursor(delta int) Model {
	if len(m.snap.Files) == 0 {
		return m
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.snap.Files) {
		return m
	}
	m.cursor = next
	return m.acknowledgeVisible()
}

// toggleDetail opens the detail view on the selected entry, or closes it
// when it is already showing. The request travels through the watcher's
// wait point so both goroutines see the same target.
func (m Model) toggleDetail() Model {
	if len(m.snap.Files) == 0 {
		return m
	}
	if m.snap.Detail == m.cursor {
		m.sendControl(watch.Event{Kind: watch.HideDetail})
		return m
	}
	m.sendControl(watch.Event{Kind: watch.ShowDetail, Index: m.cursor})
	return m
}

// acknowledgeVisible clears the change flag of the selected and viewed
// entries; looking at a file counts as seeing its change.
func (m Model) acknowledgeVisible() Model {
	for _, i := range []int{m.cursor, m.snap.Detail} {
		if i < 0 || i >= len(m.snap.Files) {
			continue
		}
		if m.snap.Files[i].Updated {
			m.store.Acknowledge(i)
			m.snap.Files[i].Updated = false
		}
	}
	return m
}

func (m Model) syncDetail() Model {
	i := m.snap.Detail
	if i < 0 || i >= len(m.snap.Files) {
		return m
	}
	atBottom := m.detailView.AtBottom()
	m.detailView.SetContent(m.snap.Files[i].Tail)
	if atBottom {
		m.detailView.GotoBottom()
	}
	return m
}

// innerSize returns the usable cell area of the detail pane, borders and
// chrome excluded. Never negative.
func (m Model) innerSize() (w, h int) {
	w = m.width - 4
	h = m.height - 5
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// sendControl forwards a control request to the watcher without ever
// blocking the render loop. A dropped request is re-creatable by the
// user; a wedged UI is not.
func (m Model) sendControl(ev watch.Event) {
	if m.controls == nil {
		return
	}
	select {
	case m.controls <- ev:
	default:
	}
}
