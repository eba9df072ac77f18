// Package manifest handles vtab.toml diagnostics configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a vtab.toml diagnostics configuration. It tunes
// the tooling around the demonstration run (trace recording, logging
// verbosity, banner color); the demonstration sequence itself takes
// no configuration.
type Manifest struct {
	Trace  Trace  `toml:"trace"`
	Log    Log    `toml:"log"`
	Output Output `toml:"output"`

	// Dir is the directory containing the vtab.toml file (set at load time).
	Dir string `toml:"-"`
}

// Trace configures the dispatch trace recorder.
type Trace struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // file path, or "stderr"
}

// Log configures diagnostic log output.
type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Output configures terminal decoration.
type Output struct {
	Color string `toml:"color"` // "auto", "always", or "never"
}

// Default returns the configuration used when no vtab.toml exists.
func Default() *Manifest {
	return &Manifest{
		Trace:  Trace{Path: "stderr"},
		Output: Output{Color: "auto"},
	}
}

// Load parses a vtab.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "vtab.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Trace.Path == "" {
		m.Trace.Path = "stderr"
	}
	if m.Output.Color == "" {
		m.Output.Color = "auto"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a vtab.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "vtab.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// TracePath returns the configured trace destination. Relative file
// paths resolve against the manifest directory; "stderr" passes
// through unchanged.
func (m *Manifest) TracePath() string {
	p := m.Trace.Path
	if p == "stderr" || p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}
