package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/enferex/treetop/internal/log"
	"github.com/enferex/treetop/internal/registry"
)

// NotifyBackend waits on kernel file notifications. One select covers
// every watched file plus the control channel, so there is a single
// blocking point per iteration.
type NotifyBackend struct {
	fsw      *fsnotify.Watcher
	reg      *registry.Registry
	controls <-chan Event
}

// NewNotifyBackend arms a notification watch on every registry entry.
// A failed registration is unrecoverable: the caller should fall back to
// polling.
func NewNotifyBackend(reg *registry.Registry, controls <-chan Event) (*NotifyBackend, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	for i := 0; i < reg.Len(); i++ {
		path := reg.At(i).Path()
		if err := fsw.Add(path); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return &NotifyBackend{fsw: fsw, reg: reg, controls: controls}, nil
}

// Wait blocks until one event is ready or timeout elapses. A timeout of
// zero or less blocks indefinitely.
func (b *NotifyBackend) Wait(ctx context.Context, timeout time.Duration) (Event, error) {
	var expire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-expire:
			return Event{Kind: None}, nil
		case c, ok := <-b.controls:
			if !ok {
				return Event{}, ErrClosed
			}
			return c, nil
		case fe, ok := <-b.fsw.Events:
			if !ok {
				return Event{}, ErrClosed
			}
			if ev, ok := b.translate(fe); ok {
				return ev, nil
			}
		case err, ok := <-b.fsw.Errors:
			if !ok {
				return Event{}, ErrClosed
			}
			log.Warnf("file notification error: %v", err)
		}
	}
}

func (b *NotifyBackend) translate(fe fsnotify.Event) (Event, bool) {
	i, ok := b.reg.IndexOf(fe.Name)
	if !ok {
		return Event{}, false
	}
	switch {
	case fe.Op.Has(fsnotify.Write) || fe.Op.Has(fsnotify.Create):
		return Event{Kind: FileChanged, Index: i}, true
	case fe.Op.Has(fsnotify.Remove) || fe.Op.Has(fsnotify.Rename):
		return Event{Kind: FileGone, Index: i}, true
	default:
		// Chmod and friends do not change content.
		return Event{}, false
	}
}

// Close releases the kernel watch descriptors.
func (b *NotifyBackend) Close() error {
	return b.fsw.Close()
}
