package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enferex/treetop/internal/config"
	"github.com/enferex/treetop/internal/log"
	"github.com/enferex/treetop/internal/prefs"
	"github.com/enferex/treetop/internal/registry"
	"github.com/enferex/treetop/internal/state"
	"github.com/enferex/treetop/internal/ui"
	"github.com/enferex/treetop/internal/watch"
)

// Options configure the treetop application.
type Options struct {
	ConfigPath string // required: the watch list
	PrefsPath  string // empty uses default ~/.config/treetop/prefs.toml
	PollEvery  int    // polling cadence in seconds; zero uses prefs/default
	ForcePoll  bool   // skip kernel notifications, always poll
}

// Run boots the treetop TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	paths, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := prefs.EnsureDefault(opts.PrefsPath); err != nil {
		log.Warnf("could not write default prefs: %v", err)
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	reg := registry.Load(paths)
	defer reg.Close()
	if reg.Len() == 0 {
		log.Warnf("watch list has no readable entries; starting empty")
	}

	store := state.New(reg.Names())

	interval := time.Duration(userPrefs.PollMillis) * time.Millisecond
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	controls := make(chan watch.Event, 16)
	backend := pickBackend(reg, controls, interval, opts.ForcePoll)

	w := watch.New(reg, store, backend, controls)
	model := ui.New(ui.Options{Store: store, Controls: controls, Prefs: userPrefs})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))
	w.SetNotify(func() { program.Send(ui.RefreshMsg{}) })

	go w.Run(runCtx)

	// The TUI owns the terminal from here on.
	restore := log.Silence()
	_, err = program.Run()
	restore()

	cancel()
	<-w.Done()

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil // interrupted, normal shutdown
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// pickBackend prefers kernel notifications and falls back to polling
// when they cannot be armed.
func pickBackend(reg *registry.Registry, controls chan watch.Event, interval time.Duration, forcePoll bool) watch.Backend {
	if !forcePoll {
		b, err := watch.NewNotifyBackend(reg, controls)
		if err == nil {
			return b
		}
		log.Warnf("file notifications unavailable, polling every %s: %v", interval, err)
	}
	return watch.NewPollBackend(reg, controls, interval)
}
