// Package registry holds the ordered set of files treetop monitors.
//
// The registry is built once at startup from the watch list and its
// length never changes afterwards; entries are addressed by index. Each
// entry owns its open file handle and a tail buffer sized to the current
// detail-pane byte budget. All mutation happens on the watcher
// goroutine; other goroutines observe extracted content through the
// state store, never through the registry.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/enferex/treetop/internal/log"
	"github.com/enferex/treetop/internal/logtail"
)

// TrackedFile is one monitored file: its open handle, identity, and the
// most recently extracted tail window.
type TrackedFile struct {
	file     *os.File
	path     string
	name     string
	buf      []byte
	tailLen  int
	lastLine int
	modTime  time.Time
}

// Path returns the file's full path as listed in the watch list.
func (t *TrackedFile) Path() string { return t.path }

// Name returns the display name derived from the path.
func (t *TrackedFile) Name() string { return t.name }

// Extract refreshes the tail window at the given byte budget and returns
// the extracted bytes plus the offset of the final line. The buffer is
// reallocated only when the budget differs from its current capacity.
func (t *TrackedFile) Extract(budget int) ([]byte, int, error) {
	if budget < 0 {
		budget = 0
	}
	if len(t.buf) != budget {
		t.buf = make([]byte, budget)
	}
	n, lastLine, err := logtail.Extract(t.file, t.buf)
	t.tailLen = n
	t.lastLine = lastLine
	if err != nil {
		return t.buf[:n], lastLine, fmt.Errorf("extract %s: %w", t.name, err)
	}
	return t.buf[:n], lastLine, nil
}

// Tail returns the most recently extracted window.
func (t *TrackedFile) Tail() []byte { return t.buf[:t.tailLen] }

// LastLine returns the offset of the final line in the current window.
func (t *TrackedFile) LastLine() int { return t.lastLine }

// Touched stats the file and reports whether its modification time
// changed since the previous call.
func (t *TrackedFile) Touched() (bool, error) {
	info, err := os.Stat(t.path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", t.name, err)
	}
	if info.ModTime().Equal(t.modTime) {
		return false, nil
	}
	t.modTime = info.ModTime()
	return true, nil
}

func (t *TrackedFile) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
}

// Registry is the ordered, fixed-length collection of tracked files.
type Registry struct {
	files  []*TrackedFile
	byPath map[string]int
}

// Load opens every listed path in declared order. Entries that cannot be
// opened are warned about and skipped; an empty registry is a legal,
// degenerate result.
func Load(paths []string) *Registry {
	r := &Registry{byPath: make(map[string]int, len(paths))}
	for _, path := range paths {
		if _, dup := r.byPath[path]; dup {
			log.Warnf("ignoring duplicate watch entry: %s", path)
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("could not open %s: %v", path, err)
			continue
		}
		t := &TrackedFile{
			file: f,
			path: path,
			name: filepath.Base(path),
		}
		r.byPath[path] = len(r.files)
		r.files = append(r.files, t)
		log.WithField("file", path).Infof("monitoring")
	}
	return r
}

// Len returns the number of tracked files.
func (r *Registry) Len() int { return len(r.files) }

// At returns the entry at index i.
func (r *Registry) At(i int) *TrackedFile { return r.files[i] }

// IndexOf maps a full path back to its registry index.
func (r *Registry) IndexOf(path string) (int, bool) {
	i, ok := r.byPath[path]
	return i, ok
}

// Names returns the display names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.files))
	for i, t := range r.files {
		names[i] = t.name
	}
	return names
}

// Close releases every file handle. The registry must not be used
// afterwards.
func (r *Registry) Close() {
	for _, t := range r.files {
		t.close()
	}
}
