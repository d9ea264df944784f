package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/marcohefti/singlish-lab/internal/schema"
)

type ListOptions struct {
	// TitleWidth caps the title column, in terminal cells. Zero means 72.
	TitleWidth int
	// Verbose prints input/expected/observed for every test, not just failures.
	Verbose bool
}

var outcomeMarks = map[string]string{
	"passed":   "✓",
	"flaky":    "±",
	"failed":   "✘",
	"timedOut": "✘",
	"tracked":  "•",
	"fixed":    "!",
	"skipped":  "-",
}

// WriteList prints one line per test grouped by suite, failure details indented under the
// failing test, and a summary block. Columns are measured in terminal cells so Sinhala
// titles and outputs line up with Latin ones.
func WriteList(w io.Writer, doc schema.TestResultsV1, opts ListOptions) error {
	maxTitle := opts.TitleWidth
	if maxTitle <= 0 {
		maxTitle = 72
	}
	col := 0
	for _, s := range doc.Suites {
		for _, t := range s.Tests {
			if tw := runewidth.StringWidth(t.Title); tw > col {
				col = tw
			}
		}
	}
	if col > maxTitle {
		col = maxTitle
	}

	lw := &lineWriter{w: w}
	for _, s := range doc.Suites {
		if len(s.Tests) == 0 {
			continue
		}
		lw.printf("\n%s (%d)\n", s.Title, len(s.Tests))
		for _, t := range s.Tests {
			mark := outcomeMarks[t.Outcome]
			if mark == "" {
				mark = "?"
			}
			title := runewidth.FillRight(runewidth.Truncate(t.Title, col, "…"), col)
			lw.printf("  %s %s  %-8s %s%s\n", mark, title, t.Outcome, formatMillis(testDurationMs(t)), retryNote(t))
			if opts.Verbose || detailWorthy(t) {
				writeDetail(lw, t)
			}
		}
	}
	lw.printf("\n")
	writeSummary(lw, doc.Summary)
	return lw.err
}

func detailWorthy(t schema.TestResultV1) bool {
	switch t.Outcome {
	case "passed", "skipped":
		return false
	}
	return true
}

func writeDetail(lw *lineWriter, t schema.TestResultV1) {
	if len(t.Attempts) == 0 {
		return
	}
	a := t.Attempts[len(t.Attempts)-1]
	const indent = "      "
	if a.Error != "" {
		lw.printf("%serror: %s\n", indent, a.Error)
	}
	for _, msg := range a.Failures {
		lw.printf("%s%s\n", indent, msg)
	}
	if a.Input != "" {
		lw.printf("%sinput:    %s\n", indent, a.Input)
	}
	if a.Expected != "" {
		lw.printf("%sexpected: %s\n", indent, a.Expected)
	}
	lw.printf("%sobserved: %s\n", indent, a.Observed)
	if a.Expected != "" && a.Expected != a.Observed {
		if c := caretLine(a.Expected, a.Observed); c != "" {
			lw.printf("%s          %s\n", indent, c)
		}
	}
	if a.Hint != "" {
		lw.printf("%shint: %s\n", indent, a.Hint)
	}
	if t.Defect != nil {
		if t.Defect.Summary != "" {
			lw.printf("%sdefect: %s\n", indent, t.Defect.Summary)
		}
		if t.Defect.Drifted {
			lw.printf("%sdrifted: known actual was %q\n", indent, t.Defect.KnownActual)
		}
	}
	for _, p := range a.Artifacts {
		lw.printf("%sartifact: %s\n", indent, p)
	}
}

// caretLine points at the first rune where observed departs from expected, measured in
// terminal cells of the observed text.
func caretLine(expected, observed string) string {
	er, or := []rune(expected), []rune(observed)
	i := 0
	for i < len(er) && i < len(or) && er[i] == or[i] {
		i++
	}
	if i == len(er) && i == len(or) {
		return ""
	}
	return strings.Repeat(" ", runewidth.StringWidth(string(or[:i]))) + "^"
}

func writeSummary(lw *lineWriter, s schema.SummaryV1) {
	lw.printf("  %d passed (%s)\n", s.Passed, formatMillis(s.DurationMs))
	lines := []struct {
		n     int
		label string
	}{
		{s.Flaky, "flaky"},
		{s.Failed, "failed"},
		{s.TimedOut, "timed out"},
		{s.Fixed, "fixed (expected to fail)"},
		{s.Skipped, "skipped"},
	}
	for _, l := range lines {
		if l.n > 0 {
			lw.printf("  %d %s\n", l.n, l.label)
		}
	}
	if s.Tracked > 0 {
		if s.Drifted > 0 {
			lw.printf("  %d tracked (%d drifted)\n", s.Tracked, s.Drifted)
		} else {
			lw.printf("  %d tracked\n", s.Tracked)
		}
	}
}

func testDurationMs(t schema.TestResultV1) int64 {
	var total int64
	for _, a := range t.Attempts {
		total += a.DurationMs
	}
	return total
}

func retryNote(t schema.TestResultV1) string {
	if n := len(t.Attempts); n > 1 {
		return fmt.Sprintf(" (retry #%d)", n-1)
	}
	return ""
}

func formatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return d.String()
	}
	return d.Round(100 * time.Millisecond).String()
}

type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}
