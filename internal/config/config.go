// Package config parses the treetop watch list: a plain text file naming
// one file to monitor per line.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// commentChar starts a comment; it and everything after it are ignored.
const commentChar = "#"

// Load reads the watch list at path and returns the listed file paths in
// declared order. The paths are not opened or validated here.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watch list: %w", err)
	}
	defer file.Close()

	paths, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("read watch list %s: %w", path, err)
	}
	return paths, nil
}

// Parse extracts watch-list entries from r. Blank lines and comments are
// skipped. There is no quoting: the first whitespace character inside a
// line truncates the entry, so paths containing spaces are unsupported.
func Parse(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, commentChar); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexFunc(line, isSpace); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
