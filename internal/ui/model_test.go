package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/enferex/treetop/internal/prefs"
	"github.com/enferex/treetop/internal/state"
	"github.com/enferex/treetop/internal/watch"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, names ...string) (Model, *state.Store, chan watch.Event) {
	t.Helper()
	store := state.New(names)
	controls := make(chan watch.Event, 16)
	m := New(Options{Store: store, Controls: controls, Prefs: prefs.Load("")})

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)
	drain(controls)
	return m, store, controls
}

func drain(ch chan watch.Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_CursorClampsAtBothEnds(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b", "c")

	// Moving up past the first row leaves the cursor unchanged.
	m = update(t, m, keyRune('k'))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after up at top", m.cursor)
	}

	m = update(t, m, keyRune('j'))
	m = update(t, m, keyRune('j'))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	// Moving down past the last row leaves the cursor unchanged.
	m = update(t, m, keyRune('j'))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after down at bottom", m.cursor)
	}
}

func TestModel_CursorNoopOnEmptyList(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, keyRune('j'))
	m = update(t, m, keyRune('k'))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 on empty list", m.cursor)
	}
	// Rendering an empty registry must not panic.
	if m.View() == "" {
		t.Fatal("View() returned nothing")
	}
}

func TestModel_FirstRefreshAcknowledgesBaseline(t *testing.T) {
	m, store, _ := newTestModel(t, "x.log", "y.log")

	// Initial extraction pass: everything flagged.
	store.Publish(0, "1\n", "1")
	store.Publish(1, "", "")

	m = update(t, m, RefreshMsg{})
	for i, f := range m.snap.Files {
		if f.Updated {
			t.Errorf("Files[%d].Updated = true after first refresh, want false", i)
		}
	}
	for i, f := range store.Snapshot().Files {
		if f.Updated {
			t.Errorf("store Files[%d].Updated = true after first refresh, want false", i)
		}
	}
}

func TestModel_SelectedChangeIsAcknowledged(t *testing.T) {
	m, store, _ := newTestModel(t, "x.log", "y.log")
	m = update(t, m, RefreshMsg{}) // seed baseline

	store.Publish(0, "hello\n", "hello")
	m = update(t, m, RefreshMsg{})

	// Cursor sits on entry 0: viewing acknowledges the change.
	if m.snap.Files[0].Updated {
		t.Fatal("selected entry should not stay flagged")
	}
	if store.Snapshot().Files[0].Updated {
		t.Fatal("acknowledgement should reach the store")
	}
}

func TestModel_UnselectedChangeKeepsFlagUntilSelected(t *testing.T) {
	m, store, _ := newTestModel(t, "x.log", "y.log")
	m = update(t, m, RefreshMsg{}) // seed baseline

	store.Publish(1, "hello\n", "hello")
	m = update(t, m, RefreshMsg{})

	if !m.snap.Files[1].Updated {
		t.Fatal("unselected entry should stay flagged")
	}

	// Selection moving onto the entry clears the flag.
	m = update(t, m, keyRune('j'))
	if m.snap.Files[1].Updated {
		t.Fatal("flag should clear when the entry becomes selected")
	}
	if store.Snapshot().Files[1].Updated {
		t.Fatal("acknowledgement should reach the store")
	}
}

func TestModel_ToggleDetailSendsControls(t *testing.T) {
	m, store, controls := newTestModel(t, "x.log")
	m = update(t, m, RefreshMsg{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	select {
	case ev := <-controls:
		if ev != (watch.Event{Kind: watch.ShowDetail, Index: 0}) {
			t.Fatalf("control = %+v, want ShowDetail 0", ev)
		}
	default:
		t.Fatal("enter should send a ShowDetail control")
	}

	// Simulate the watcher applying the request.
	store.SetDetail(0)
	m = update(t, m, RefreshMsg{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	select {
	case ev := <-controls:
		if ev.Kind != watch.HideDetail {
			t.Fatalf("control = %+v, want HideDetail", ev)
		}
	default:
		t.Fatal("enter on an open detail should send HideDetail")
	}
}

func TestModel_UnrecognizedKeyClosesDetail(t *testing.T) {
	m, store, controls := newTestModel(t, "x.log")
	store.SetDetail(0)
	m = update(t, m, RefreshMsg{})

	m = update(t, m, keyRune('z'))
	select {
	case ev := <-controls:
		if ev.Kind != watch.HideDetail {
			t.Fatalf("control = %+v, want HideDetail", ev)
		}
	default:
		t.Fatal("unrecognized key should close the detail view")
	}
}

func TestModel_UnrecognizedKeyNoopWhenNoDetail(t *testing.T) {
	m, _, controls := newTestModel(t, "x.log")
	m = update(t, m, keyRune('z'))
	select {
	case ev := <-controls:
		t.Fatalf("unexpected control %+v", ev)
	default:
	}
}

func TestModel_ResizeRecomputesBudget(t *testing.T) {
	store := state.New([]string{"x.log"})
	controls := make(chan watch.Event, 4)
	m := New(Options{Store: store, Controls: controls, Prefs: prefs.Load("")})

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	wantBudget := (80 - 4) * (24 - 5)
	if got := store.Budget(); got != wantBudget {
		t.Fatalf("budget = %d, want %d", got, wantBudget)
	}
	select {
	case ev := <-controls:
		if ev.Kind != watch.Resized {
			t.Fatalf("control = %+v, want Resized", ev)
		}
	default:
		t.Fatal("resize should notify the watcher")
	}

	// A tiny surface must clamp to zero, never negative.
	m = update(t, m, tea.WindowSizeMsg{Width: 2, Height: 2})
	if got := store.Budget(); got != 0 {
		t.Fatalf("budget = %d, want 0 for tiny surface", got)
	}
	_ = m
}

func TestRenderRow_PadsNamesByDisplayWidth(t *testing.T) {
	m, _, _ := newTestModel(t, "журнал.log", "ascii.log")

	nameW := lipgloss.Width("журнал.log")
	rows := []string{
		m.renderRow(0, state.FileView{Name: "журнал.log", LastLine: "x"}, nameW, 60),
		m.renderRow(1, state.FileView{Name: "ascii.log", LastLine: "x"}, nameW, 60),
	}

	// The description must start at the same display column for every
	// row, regardless of how many bytes the name takes.
	cols := make([]int, len(rows))
	for i, row := range rows {
		cut := strings.LastIndex(row, "x")
		if cut < 0 {
			t.Fatalf("row %d lost its description: %q", i, row)
		}
		cols[i] = lipgloss.Width(row[:cut])
	}
	if cols[0] != cols[1] {
		t.Fatalf("description columns differ: %d vs %d", cols[0], cols[1])
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t, "x.log")
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("cmd() = %+v, want QuitMsg", msg)
	}
}
