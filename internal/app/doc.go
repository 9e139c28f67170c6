// Package app is the composition root: it loads the watch list, builds
// the registry, chooses a watcher backend, and wires the watcher and the
// TUI around the shared state store.
//
// Two goroutines run for the life of the process. The watcher owns all
// file reads and tail extraction; the Bubble Tea loop owns keyboard
// input and rendering. They meet only at the state store and at the
// watcher's control channel. At shutdown the watcher's context is
// cancelled and Run waits for it to finish before closing the registry's
// file handles.
//
// Startup failures split into two classes. A missing or unreadable watch
// list is fatal and surfaces as an error from Run. Individual watch
// entries that cannot be opened are warned about and skipped; an empty
// registry still starts.
package app
