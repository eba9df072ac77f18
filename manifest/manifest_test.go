package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	// Create a temporary directory with a vtab.toml
	dir := t.TempDir()
	tomlContent := `
[trace]
enabled = true
path = "dispatch.log"

[log]
verbosity = 2

[output]
color = "never"
`
	if err := os.WriteFile(filepath.Join(dir, "vtab.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !m.Trace.Enabled {
		t.Error("trace enabled = false, want true")
	}
	if m.Trace.Path != "dispatch.log" {
		t.Errorf("trace path = %q, want dispatch.log", m.Trace.Path)
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("log verbosity = %d, want 2", m.Log.Verbosity)
	}
	if m.Output.Color != "never" {
		t.Errorf("output color = %q, want never", m.Output.Color)
	}
	if !filepath.IsAbs(m.Dir) {
		t.Errorf("manifest dir = %q, want absolute path", m.Dir)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[trace]
enabled = true
`
	if err := os.WriteFile(filepath.Join(dir, "vtab.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Default trace destination should be stderr
	if m.Trace.Path != "stderr" {
		t.Errorf("default trace path = %q, want stderr", m.Trace.Path)
	}
	// Default color mode should be auto
	if m.Output.Color != "auto" {
		t.Errorf("default color = %q, want auto", m.Output.Color)
	}
	if m.Log.Verbosity != 0 {
		t.Errorf("default verbosity = %d, want 0", m.Log.Verbosity)
	}
}

func TestLoadManifestParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vtab.toml"), []byte("[trace\nenabled"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load succeeded on malformed TOML")
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestFindAndLoad(t *testing.T) {
	// Create nested directory structure
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `[output]
color = "always"
`
	if err := os.WriteFile(filepath.Join(dir, "vtab.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find manifest when starting from a deep subdirectory
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Output.Color != "always" {
		t.Errorf("output color = %q, want always", m.Output.Color)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no vtab.toml exists")
	}
}

func TestTracePath(t *testing.T) {
	m := &Manifest{
		Dir:   "/app",
		Trace: Trace{Path: "dispatch.log"},
	}
	if got := m.TracePath(); got != "/app/dispatch.log" {
		t.Errorf("TracePath() = %q, want /app/dispatch.log", got)
	}

	m.Trace.Path = "stderr"
	if got := m.TracePath(); got != "stderr" {
		t.Errorf("TracePath() = %q, want stderr", got)
	}

	m.Trace.Path = "/var/log/dispatch.log"
	if got := m.TracePath(); got != "/var/log/dispatch.log" {
		t.Errorf("TracePath() = %q, want /var/log/dispatch.log", got)
	}
}

func TestDefault(t *testing.T) {
	m := Default()
	if m.Trace.Enabled {
		t.Error("default trace enabled = true, want false")
	}
	if m.Trace.Path != "stderr" {
		t.Errorf("default trace path = %q, want stderr", m.Trace.Path)
	}
	if m.Output.Color != "auto" {
		t.Errorf("default color = %q, want auto", m.Output.Color)
	}
}
