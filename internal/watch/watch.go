package watch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/enferex/treetop/internal/log"
	"github.com/enferex/treetop/internal/registry"
	"github.com/enferex/treetop/internal/state"
)

// waitTimeout bounds each backend wait so the loop stays responsive to
// cancellation even when nothing changes.
const waitTimeout = 250 * time.Millisecond

// Backend is one logical wait primitive: a single blocking call that
// reports the next file change or control request.
type Backend interface {
	Wait(ctx context.Context, timeout time.Duration) (Event, error)
	Close() error
}

// Watcher drives a backend in a loop, owning all file reads and tail
// extraction. Results land in the shared store; after every handled
// event the render loop is nudged through the notify callback.
type Watcher struct {
	reg      *registry.Registry
	store    *state.Store
	backend  Backend
	controls chan Event
	notify   func()
	errored  []bool
	done     chan struct{}
}

// New creates a watcher over the given registry, store, and backend.
// The controls channel must be the one the backend multiplexes.
func New(reg *registry.Registry, store *state.Store, backend Backend, controls chan Event) *Watcher {
	return &Watcher{
		reg:      reg,
		store:    store,
		backend:  backend,
		controls: controls,
		errored:  make([]bool, reg.Len()),
		done:     make(chan struct{}),
	}
}

// SetNotify registers the callback invoked after each state change.
// Must be called before Run.
func (w *Watcher) SetNotify(fn func()) { w.notify = fn }

// Controls returns the channel the render loop uses to reach the
// watcher's wait point.
func (w *Watcher) Controls() chan<- Event { return w.controls }

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// Run loops until ctx is cancelled. The first pass extracts every tail
// so the display starts populated.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	defer func() {
		if err := w.backend.Close(); err != nil {
			log.Warnf("close watch backend: %v", err)
		}
	}()

	w.refreshAll()
	w.post()

	for {
		ev, err := w.backend.Wait(ctx, waitTimeout)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed) {
				return
			}
			log.Errorf("watch wait: %v", err)
			return
		}

		switch ev.Kind {
		case None:
			continue
		case FileChanged:
			w.refreshOne(ev.Index)
		case FileGone:
			log.Warnf("no longer watchable: %s", w.reg.At(ev.Index).Name())
			w.markErrored(ev.Index)
		case Resized:
			w.reextractAll()
		case ShowDetail:
			w.store.SetDetail(ev.Index)
			w.refreshOne(ev.Index)
		case HideDetail:
			w.store.ClearDetail()
		}
		w.post()
	}
}

// refreshOne re-extracts entry i's tail at the current budget and
// publishes it with the updated flag set.
func (w *Watcher) refreshOne(i int) {
	if tail, last, ok := w.extract(i); ok {
		w.store.Publish(i, tail, last)
	}
}

func (w *Watcher) refreshAll() {
	for i := 0; i < w.reg.Len(); i++ {
		w.refreshOne(i)
	}
}

// reextractAll re-reads every tail at the current budget without
// flagging anything: a resize changes the extraction window, not the
// files. Flags already pending stay pending.
func (w *Watcher) reextractAll() {
	for i := 0; i < w.reg.Len(); i++ {
		if tail, last, ok := w.extract(i); ok {
			w.store.Republish(i, tail, last)
		}
	}
}

func (w *Watcher) extract(i int) (tail, last string, ok bool) {
	if i < 0 || i >= w.reg.Len() || w.errored[i] {
		return "", "", false
	}
	budget := w.store.Budget()
	raw, lastLine, err := w.reg.At(i).Extract(budget)
	if err != nil {
		log.Warnf("%v", err)
		w.markErrored(i)
		return "", "", false
	}
	return string(raw), strings.TrimRight(string(raw[lastLine:]), "\r\n"), true
}

func (w *Watcher) markErrored(i int) {
	if i < 0 || i >= w.reg.Len() {
		return
	}
	w.errored[i] = true
	w.store.MarkErrored(i)
}

func (w *Watcher) post() {
	if w.notify != nil {
		w.notify()
	}
}
