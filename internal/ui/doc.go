// Package ui implements the treetop terminal interface with Bubble Tea.
//
// The model renders the monitored files as a navigable list with a
// change indicator per row, and an on-demand detail pane showing the
// selected file's recent tail. It owns keyboard input and the selection
// cursor; everything it displays comes from snapshots of the shared
// state store, refreshed whenever the watcher posts a RefreshMsg.
//
// Detail-view toggles and resize notifications are forwarded to the
// watcher over its control channel rather than applied directly, so
// shared state is only ever mutated behind the store's lock.
package ui
