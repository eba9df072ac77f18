// Vtab CLI - runs the dispatch table demonstration
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/vtab/demo"
	"github.com/chazu/vtab/dispatch"
	"github.com/chazu/vtab/manifest"
	"github.com/chazu/vtab/trace"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("vtab")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	tracePath := flag.String("trace", "", "Enable dispatch tracing (path to file, or 'stderr' for stderr output)")
	showStats := flag.Bool("stats", false, "Print send counters to stderr after the run")
	noManifest := flag.Bool("no-manifest", false, "Skip loading vtab.toml")
	colorMode := flag.String("color", "", "Colorize section banners: auto, always, or never")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vtab [options]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the dispatch table demonstration: two objects are constructed against\n")
		fmt.Fprintf(os.Stderr, "shared class tables, sent through their slots, retargeted, and torn down.\n")
		fmt.Fprintf(os.Stderr, "The demonstration itself is fixed; options only tune diagnostics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vtab                     # Run the demonstration\n")
		fmt.Fprintf(os.Stderr, "  vtab -stats              # Also print send counters\n")
		fmt.Fprintf(os.Stderr, "  vtab -trace stderr       # Trace every dispatch to stderr\n")
		fmt.Fprintf(os.Stderr, "  vtab -trace dispatch.log # Append dispatch traces to a file\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := loadManifest(*noManifest)

	verbosity := cfg.Log.Verbosity
	if *verbose && verbosity < 1 {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if cfg.Dir != "" {
		log.Infof("loaded vtab.toml from %s", cfg.Dir)
	}

	// Flags win over the manifest.
	mode := cfg.Output.Color
	if *colorMode != "" {
		mode = *colorMode
	}

	var out = newOutput(mode)
	env := dispatch.NewEnv(out)

	if *showStats {
		env.Stats = dispatch.NewStats()
	}

	dest := ""
	if cfg.Trace.Enabled {
		dest = cfg.TracePath()
	}
	if *tracePath != "" {
		dest = *tracePath
	}
	if dest != "" {
		rec, err := trace.Open(dest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer rec.Close()
		env.OnSend = rec.Hook()
		log.Infof("dispatch tracing to %s (run %s)", dest, rec.RunID())
	}

	demo.Run(env)
	out.Flush()

	if env.Stats != nil {
		printStats(env.Stats)
	}
}

// loadManifest finds the nearest vtab.toml. A missing or unreadable
// manifest never stops the run; the demonstration proceeds on defaults.
func loadManifest(skip bool) *manifest.Manifest {
	if skip {
		return manifest.Default()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return manifest.Default()
	}

	m, err := manifest.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading vtab.toml: %v\n", err)
		return manifest.Default()
	}
	if m == nil {
		return manifest.Default()
	}
	return m
}

// printStats writes the per-slot send counters to stderr.
func printStats(stats *dispatch.Stats) {
	counts := stats.Snapshot()
	fmt.Fprintf(os.Stderr, "\n%d sends across %d slots:\n", stats.Total(), len(counts))
	for _, key := range stats.Keys() {
		fmt.Fprintf(os.Stderr, "  %-20s %d\n", key, counts[key])
	}
}
