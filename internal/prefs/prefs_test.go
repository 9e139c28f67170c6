package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if p.Indicator != defaultIndicator {
		t.Errorf("Indicator = %q, want %q", p.Indicator, defaultIndicator)
	}
	if p.Theme != defaultTheme {
		t.Errorf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.PollMillis != defaultPollMillis {
		t.Errorf("PollMillis = %d, want %d", p.PollMillis, defaultPollMillis)
	}
}

func TestLoad_ParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	content := "indicator = \"!\"\ntheme = \"mono\"\npoll_millis = 100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Indicator != "!" {
		t.Errorf("Indicator = %q, want %q", p.Indicator, "!")
	}
	if p.Theme != "mono" {
		t.Errorf("Theme = %q, want %q", p.Theme, "mono")
	}
	if p.PollMillis != 100 {
		t.Errorf("PollMillis = %d, want 100", p.PollMillis)
	}
}

func TestLoad_EmptyValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	content := "indicator = \"  \"\npoll_millis = -5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Indicator != defaultIndicator {
		t.Errorf("Indicator = %q, want default %q", p.Indicator, defaultIndicator)
	}
	if p.PollMillis != defaultPollMillis {
		t.Errorf("PollMillis = %d, want default %d", p.PollMillis, defaultPollMillis)
	}
}

func TestLoad_InvalidTOMLUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("indicator = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Indicator != defaultIndicator {
		t.Errorf("Indicator = %q, want default %q", p.Indicator, defaultIndicator)
	}
}

func TestEnsureDefault_WritesTemplateOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")

	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	if got := Load(path); got != defaults() {
		t.Errorf("Load() = %+v, want defaults", got)
	}

	// An existing file is never overwritten.
	want := Prefs{Indicator: "+", Theme: "mono", PollMillis: 50}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")
	want := Prefs{Indicator: "+", Theme: "mono", PollMillis: 50}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
