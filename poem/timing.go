package poem

import (
	"time"
	"unicode/utf8"
)

// LineTiming is the highlight window for one poem line.
type LineTiming struct {
	Index    int
	Start    time.Duration
	Duration time.Duration
}

// LineTimings spreads a total narration duration across lines in proportion
// to each line's character count. This is an approximation, not word
// alignment: a line with twice the characters gets twice the highlight time.
// The final line absorbs rounding so the windows exactly cover total.
func LineTimings(lines []string, total time.Duration) []LineTiming {
	if len(lines) == 0 || total <= 0 {
		return nil
	}

	counts := make([]int, len(lines))
	sum := 0
	for i, l := range lines {
		counts[i] = utf8.RuneCountInString(l)
		sum += counts[i]
	}

	timings := make([]LineTiming, len(lines))

	if sum == 0 {
		// All-blank lines: fall back to an even split.
		per := total / time.Duration(len(lines))
		var at time.Duration
		for i := range lines {
			timings[i] = LineTiming{Index: i, Start: at, Duration: per}
			at += per
		}
		timings[len(timings)-1].Duration = total - timings[len(timings)-1].Start
		return timings
	}

	var at time.Duration
	for i := range lines {
		d := time.Duration(float64(total) * float64(counts[i]) / float64(sum))
		timings[i] = LineTiming{Index: i, Start: at, Duration: d}
		at += d
	}
	timings[len(timings)-1].Duration = total - timings[len(timings)-1].Start

	return timings
}
