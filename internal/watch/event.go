package watch

import "errors"

// Kind discriminates watcher events.
type Kind int

const (
	// None means the wait timed out with nothing to report.
	None Kind = iota
	// FileChanged reports new content in the indexed registry entry.
	FileChanged
	// FileGone reports that the indexed entry was deleted or renamed.
	FileGone
	// Resized asks the watcher to re-extract every tail at the current
	// byte budget.
	Resized
	// ShowDetail opens the detail view on the indexed entry.
	ShowDetail
	// HideDetail closes the detail view.
	HideDetail
)

// Event is one discrete observation: a file change detected by a
// backend, or a control request from the render loop. Both travel
// through the same wait point so the watcher has exactly one place to
// block.
type Event struct {
	Kind  Kind
	Index int
}

// ErrClosed is returned by Wait once the control channel is closed.
var ErrClosed = errors.New("watch: control channel closed")
