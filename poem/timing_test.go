package poem_test

import (
	"testing"
	"time"

	"github.com/versemix/versemix/poem"
)

func TestLineTimingsProportional(t *testing.T) {
	// Second line has twice the characters of the first.
	lines := []string{"abcde", "abcdeabcde", "abcde"}
	total := 4 * time.Second

	timings := poem.LineTimings(lines, total)
	if len(timings) != 3 {
		t.Fatalf("got %d timings, want 3", len(timings))
	}

	if timings[0].Duration != time.Second {
		t.Errorf("line 0 duration: got %v, want 1s", timings[0].Duration)
	}
	if timings[1].Duration != 2*time.Second {
		t.Errorf("line 1 duration: got %v, want 2s", timings[1].Duration)
	}
	if timings[1].Start != time.Second {
		t.Errorf("line 1 start: got %v, want 1s", timings[1].Start)
	}
}

func TestLineTimingsCoverTotal(t *testing.T) {
	lines := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "g"}
	total := 12345 * time.Millisecond

	timings := poem.LineTimings(lines, total)

	var at time.Duration
	for _, tm := range timings {
		if tm.Start != at {
			t.Errorf("line %d start: got %v, want %v", tm.Index, tm.Start, at)
		}
		at += tm.Duration
	}
	if at != total {
		t.Errorf("windows cover %v, want %v", at, total)
	}
}

func TestLineTimingsEmpty(t *testing.T) {
	if got := poem.LineTimings(nil, time.Second); got != nil {
		t.Errorf("got %v, want nil for no lines", got)
	}
	if got := poem.LineTimings([]string{"x"}, 0); got != nil {
		t.Errorf("got %v, want nil for zero duration", got)
	}
}
