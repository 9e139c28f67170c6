// Package prefs handles treetop user preferences persistence.
// Preferences are stored in ~/.config/treetop/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for treetop.
type Prefs struct {
	// Indicator is the glyph drawn next to entries with unseen changes.
	Indicator string `toml:"indicator"`
	// Theme selects the color theme.
	Theme string `toml:"theme"`
	// PollMillis is the polling backend cadence in milliseconds, used
	// when no interval is given on the command line.
	PollMillis int `toml:"poll_millis"`
}

const (
	defaultPrefsPath  = "~/.config/treetop/prefs.toml"
	defaultIndicator  = "*"
	defaultTheme      = "plain"
	defaultPollMillis = 25
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{
		Indicator:  defaultIndicator,
		Theme:      defaultTheme,
		PollMillis: defaultPollMillis,
	}
}

// Load reads preferences from the given path. A missing or unreadable
// file degrades to defaults rather than failing: preferences are never
// worth refusing to start over.
func Load(path string) Prefs {
	prefs := defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && strings.TrimSpace(path) != "" {
			// An explicit prefs path that exists but cannot be read is
			// worth mentioning; the default path silently falls back.
			fmt.Fprintf(os.Stderr, "treetop: ignoring prefs: %v\n", err)
		}
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults()
	}

	if strings.TrimSpace(prefs.Indicator) == "" {
		prefs.Indicator = defaultIndicator
	}
	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.PollMillis <= 0 {
		prefs.PollMillis = defaultPollMillis
	}

	return prefs
}

// EnsureDefault writes a default preferences file when none exists yet,
// giving users a template to edit. An existing file is left alone.
func EnsureDefault(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return Save(path, defaults())
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
