// Package state provides the thread-safe store shared by the watcher
// and the render loop.
//
// The watcher publishes extracted tails and change flags; the render
// loop reads immutable snapshots and acknowledges changes as the user
// sees them. The detail-view target lives here too, so both goroutines
// mutate it under the same lock regardless of which watcher backend is
// active.
//
// The store is the composition side of the display discipline: flag and
// tail updates batch under one mutex while the physical flush is
// serialized by the TUI runtime's single renderer goroutine.
package state
