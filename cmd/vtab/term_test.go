package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutputStylesBanners(t *testing.T) {
	var buf bytes.Buffer
	o := &output{w: &buf, styled: true}

	o.Write([]byte("=== constructing objects ===\n"))
	o.Write([]byte("a := Base(payload=10)\n"))

	got := buf.String()
	if !strings.Contains(got, "\033[1m=== constructing objects ===\033[22m\n") {
		t.Errorf("banner line not styled: %q", got)
	}
	if !strings.Contains(got, "a := Base(payload=10)\n") {
		t.Errorf("plain line altered: %q", got)
	}
	if strings.Contains(got, "\033[1ma :=") {
		t.Errorf("plain line styled: %q", got)
	}
}

func TestOutputUnstyledPassthrough(t *testing.T) {
	var buf bytes.Buffer
	o := &output{w: &buf}

	o.Write([]byte("=== constructing objects ===\n"))

	if buf.String() != "=== constructing objects ===\n" {
		t.Errorf("unstyled output = %q, want passthrough", buf.String())
	}
}

func TestOutputSplitWrites(t *testing.T) {
	var buf bytes.Buffer
	o := &output{w: &buf, styled: true}

	o.Write([]byte("=== retargeting"))
	if buf.Len() != 0 {
		t.Errorf("partial line emitted early: %q", buf.String())
	}
	o.Write([]byte(" a to the Derived table ===\n"))

	want := "\033[1m=== retargeting a to the Derived table ===\033[22m\n"
	if buf.String() != want {
		t.Errorf("styled line = %q, want %q", buf.String(), want)
	}
}

func TestOutputLeadingNewline(t *testing.T) {
	var buf bytes.Buffer
	o := &output{w: &buf, styled: true}

	o.Write([]byte("\n=== teardown through the destroy slot ===\n"))

	want := "\n\033[1m=== teardown through the destroy slot ===\033[22m\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestOutputFlush(t *testing.T) {
	var buf bytes.Buffer
	o := &output{w: &buf, styled: true}

	o.Write([]byte("tail without newline"))
	o.Flush()

	if buf.String() != "tail without newline" {
		t.Errorf("flushed = %q, want tail without newline", buf.String())
	}

	// Flush with nothing pending is a no-op.
	o.Flush()
	if buf.String() != "tail without newline" {
		t.Errorf("second flush wrote extra bytes: %q", buf.String())
	}
}

func TestColorEnabledModes(t *testing.T) {
	if colorEnabled("never") {
		t.Error("colorEnabled(never) = true, want false")
	}
	if !colorEnabled("always") {
		t.Error("colorEnabled(always) = false, want true")
	}
}
