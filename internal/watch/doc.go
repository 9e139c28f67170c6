// Package watch detects file changes and delivers them, together with
// control requests from the render loop, as discrete events.
//
// Two interchangeable backends implement the same Wait contract. The
// notify backend arms fsnotify on every registry path and multiplexes
// kernel events with the control channel in a single select. The poll
// backend stats every entry at a fixed cadence and reports modification
// time deltas; it multiplexes the same control channel, so detail-view
// toggles are synchronized identically under both backends.
//
// Each Wait call returns at most one event; backends queue the rest
// internally. Rapid successive writes between iterations coalesce into a
// single change notification: delivery is at-least-once, and a missed
// event self-heals on the next detection cycle.
//
// The Watcher owns all file reads. On a change it re-extracts the tail
// into the shared store, sets the entry's updated flag, and nudges the
// render loop. A file that can no longer be observed is marked errored
// and the rest of the registry stays monitored.
package watch
