package demo

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/vtab/dispatch"
)

// identityLine matches the one run-varying part of the transcript,
// capturing the header name, class, and fingerprint.
var identityLine = regexp.MustCompile(`^([ab])\.table = 0x[0-9a-f]+ \((Base|Derived), fp ([0-9a-f]{8})\)$`)

func TestRunTranscript(t *testing.T) {
	var buf bytes.Buffer
	Run(dispatch.NewEnv(&buf))

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	// Pointers vary per run; normalize identity lines after checking
	// their shape, keeping class and fingerprint for the comparison.
	for i, line := range got {
		if m := identityLine.FindStringSubmatch(line); m != nil {
			got[i] = m[1] + ".table = <ptr> (" + m[2] + ", fp " + m[3] + ")"
		}
	}

	want := []string{
		"=== constructing objects ===",
		"a := Base(payload=10)",
		"b := Derived(payload=42)",
		"",
		"=== table identities (shared per class) ===",
		"a.table = <ptr> (Base, fp " + BaseTable().ShortFingerprint() + ")",
		"b.table = <ptr> (Derived, fp " + DerivedTable().ShortFingerprint() + ")",
		"",
		"=== indirect calls through the table ===",
		"[Base::foo] payload=10",
		"[Base::bar] payload=10",
		"[Derived::foo] payload=42 (overrides Base::foo)",
		"[Derived::bar] payload=42 (overrides Base::bar)",
		"",
		"=== polymorphic dispatch over a mixed sequence ===",
		"[Base::foo] payload=10",
		"[Base::bar] payload=10",
		"[Derived::foo] payload=42 (overrides Base::foo)",
		"[Derived::bar] payload=42 (overrides Base::bar)",
		"",
		"=== retargeting a to the Derived table ===",
		"[Derived::foo] payload=10 (overrides Base::foo)",
		"[Derived::bar] payload=10 (overrides Base::bar)",
		"",
		"=== teardown through the destroy slot ===",
		"[Derived::destroy] tearing down (Base teardown would follow)",
		"[Derived::destroy] tearing down (Base teardown would follow)",
		"",
		"(done)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestRunObservers(t *testing.T) {
	env := dispatch.NewEnv(&bytes.Buffer{})
	env.Stats = dispatch.NewStats()

	var events []dispatch.SendEvent
	env.OnSend = func(ev dispatch.SendEvent) { events = append(events, ev) }

	Run(env)

	assert.Len(t, events, 12, "every dispatch in the sequence is observed")
	assert.EqualValues(t, 12, env.Stats.Total())

	want := map[string]uint64{
		"Base>>foo":        2,
		"Base>>bar":        2,
		"Derived>>foo":     3,
		"Derived>>bar":     3,
		"Derived>>destroy": 2,
	}
	if diff := cmp.Diff(want, env.Stats.Snapshot()); diff != "" {
		t.Errorf("send counts mismatch (-want +got):\n%s", diff)
	}

	require.NotEmpty(t, events)
	first := events[0]
	assert.Equal(t, "Base", first.Class)
	assert.Equal(t, "foo", first.Selector)
	assert.Equal(t, "Base::foo", first.Slot)
	assert.EqualValues(t, 10, first.Payload)

	// After the retarget no send resolves through Base again.
	last := events[len(events)-1]
	assert.Equal(t, "Derived", last.Class)
	assert.Equal(t, "destroy", last.Selector)
}

func TestRunStableAcrossRuns(t *testing.T) {
	strip := func(s string) string {
		var kept []string
		for _, line := range strings.Split(s, "\n") {
			if identityLine.MatchString(line) {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}

	var first, second bytes.Buffer
	Run(dispatch.NewEnv(&first))
	Run(dispatch.NewEnv(&second))

	assert.Equal(t, strip(first.String()), strip(second.String()),
		"everything but the pointer lines is byte-stable")
}

func BenchmarkRun(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Run(dispatch.NewEnv(io.Discard))
	}
}
