package state

import (
	"sync"
	"time"
)

// NoDetail marks the detail target as closed.
const NoDetail = -1

// FileView is the render loop's view of one tracked file.
type FileView struct {
	Name     string
	Tail     string
	LastLine string
	Updated  bool
	Errored  bool
}

// Snapshot is an immutable copy of the shared state at a point in time.
type Snapshot struct {
	Files       []FileView
	Detail      int // index into Files, or NoDetail
	Budget      int
	Width       int
	Height      int
	LastUpdated time.Time
}

// Store coordinates state shared between the watcher goroutine and the
// render loop. Every field is read and written under one mutex; a file's
// tail is always fully stored before its Updated flag becomes visible.
type Store struct {
	mu          sync.RWMutex
	files       []FileView
	detail      int
	budget      int
	width       int
	height      int
	lastUpdated time.Time
}

// New creates a store with one view per display name and no open detail.
func New(names []string) *Store {
	files := make([]FileView, len(names))
	for i, name := range names {
		files[i].Name = name
	}
	return &Store{files: files, detail: NoDetail}
}

// Publish stores a freshly extracted tail for entry i and marks it
// updated in the same critical section.
func (s *Store) Publish(i int, tail, lastLine string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Tail = tail
	s.files[i].LastLine = lastLine
	s.files[i].Updated = true
	s.lastUpdated = time.Now()
}

// Republish rewrites entry i's tail without touching its change flag.
// A resize changes the extraction window, not the file, so it must not
// light an indicator; an already-pending flag survives untouched.
func (s *Store) Republish(i int, tail, lastLine string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Tail = tail
	s.files[i].LastLine = lastLine
}

// Acknowledge clears entry i's updated flag; viewing a file counts as
// seeing its change.
func (s *Store) Acknowledge(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Updated = false
}

// AcknowledgeAll clears every updated flag. Used once after the initial
// extraction pass: baseline content is not a change worth flagging.
func (s *Store) AcknowledgeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		s.files[i].Updated = false
	}
}

// MarkErrored flags entry i as no longer watchable. Monitoring of the
// remaining entries continues.
func (s *Store) MarkErrored(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Errored = true
	s.files[i].Updated = false
	s.lastUpdated = time.Now()
}

// SetDetail opens the detail view on entry i.
func (s *Store) SetDetail(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		s.detail = NoDetail
		return
	}
	s.detail = i
}

// ClearDetail closes the detail view.
func (s *Store) ClearDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = NoDetail
}

// Detail returns the current detail target, or NoDetail.
func (s *Store) Detail() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

// SetBudget records the detail-pane byte budget. Negative budgets clamp
// to zero.
func (s *Store) SetBudget(b int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b < 0 {
		b = 0
	}
	s.budget = b
}

// Budget returns the current detail-pane byte budget.
func (s *Store) Budget() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget
}

// SetSize records the current display surface geometry.
func (s *Store) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// Snapshot returns a defensive copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]FileView, len(s.files))
	copy(files, s.files)
	return Snapshot{
		Files:       files,
		Detail:      s.detail,
		Budget:      s.budget,
		Width:       s.width,
		Height:      s.height,
		LastUpdated: s.lastUpdated,
	}
}
