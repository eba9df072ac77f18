package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Banner styling for the demonstration output. Only section banner
// lines are decorated; every other byte passes through untouched, so
// piped or redirected output is identical to the unstyled stream.

var (
	colorOnce sync.Once
	colorVal  bool
)

// detectColor reports whether stdout can take ANSI styling.
func detectColor() bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	// Not a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

func stdoutColorable() bool {
	colorOnce.Do(func() {
		colorVal = detectColor()
	})
	return colorVal
}

// colorEnabled resolves a color mode ("auto", "always", or "never";
// anything else behaves as auto) against the detected terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return stdoutColorable()
	}
}

var bannerPrefix = []byte("=== ")

// output writes the demonstration stream to stdout, bolding banner
// lines when styling is on. Partial lines are buffered so styling
// decisions always see a whole line.
type output struct {
	w       io.Writer
	styled  bool
	pending []byte
}

func newOutput(mode string) *output {
	return &output{w: os.Stdout, styled: colorEnabled(mode)}
}

func (o *output) Write(p []byte) (int, error) {
	if !o.styled {
		return o.w.Write(p)
	}

	o.pending = append(o.pending, p...)
	for {
		i := bytes.IndexByte(o.pending, '\n')
		if i < 0 {
			return len(p), nil
		}
		if err := o.emit(o.pending[:i+1]); err != nil {
			return len(p), err
		}
		o.pending = o.pending[i+1:]
	}
}

func (o *output) emit(line []byte) error {
	if bytes.HasPrefix(line, bannerPrefix) {
		_, err := fmt.Fprintf(o.w, "\033[1m%s\033[22m\n", bytes.TrimSuffix(line, []byte("\n")))
		return err
	}
	_, err := o.w.Write(line)
	return err
}

// Flush writes out any buffered partial line unstyled.
func (o *output) Flush() {
	if len(o.pending) == 0 {
		return
	}
	o.w.Write(o.pending)
	o.pending = nil
}
