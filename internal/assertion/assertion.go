// Package assertion decides pass/fail for an observed output. A mismatch is an ordinary
// Verdict with Pass=false, not an error.
package assertion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/unicode/norm"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/script"
)

type Mode string

const (
	ModeExact   Mode = "exact"
	ModeAbsence Mode = "absence"
	ModeUI      Mode = "ui"
)

const (
	CheckExact       = codes.ExpectExact
	CheckNoNative    = codes.ExpectNoNative
	CheckStrictEmpty = codes.ExpectEmpty
	CheckUI          = codes.ExpectUIPredicate
)

type Failure struct {
	Check   string `json:"check"`
	Message string `json:"message"`
}

type Verdict struct {
	FixtureID string    `json:"fixtureId"`
	Mode      Mode      `json:"mode"`
	Pass      bool      `json:"pass"`
	Expected  string    `json:"expected,omitempty"`
	Observed  string    `json:"observed"`
	Failures  []Failure `json:"failures,omitempty"`
	Diff      string    `json:"diff,omitempty"`
	Hint      string    `json:"hint,omitempty"`
}

// Messages renders each failure with the fixture id, for reports.
func (v Verdict) Messages() []string {
	if len(v.Failures) == 0 {
		return nil
	}
	out := make([]string, 0, len(v.Failures))
	for _, f := range v.Failures {
		out = append(out, fmt.Sprintf("%s: %s", v.FixtureID, f.Message))
	}
	return out
}

// Exact passes only when observed is byte-identical to expected.
func Exact(id, expected, observed string) Verdict {
	v := Verdict{FixtureID: id, Mode: ModeExact, Expected: expected, Observed: observed}
	if observed == expected {
		v.Pass = true
		return v
	}
	v.Failures = []Failure{{
		Check:   CheckExact,
		Message: fmt.Sprintf("expected %q, observed %q%s", expected, observed, firstDifference(expected, observed)),
	}}
	v.Diff = cmp.Diff(expected, observed)
	v.Hint = Hint(expected, observed)
	return v
}

// Absence passes when observed holds no native-script code point and, for strict
// fixtures, is also empty. Both checks are reported when both fail.
func Absence(id, observed string, strict bool) Verdict {
	v := Verdict{FixtureID: id, Mode: ModeAbsence, Observed: observed}
	if r, at, ok := script.FirstNative(observed); ok {
		v.Failures = append(v.Failures, Failure{
			Check: CheckNoNative,
			Message: fmt.Sprintf("expected no native-script output, observed %q (%d native code points, first %U %q at byte %d)",
				observed, script.CountNative(observed), r, r, at),
		})
	}
	if strict && observed != "" {
		v.Failures = append(v.Failures, Failure{
			Check:   CheckStrictEmpty,
			Message: fmt.Sprintf("expected empty output, observed %q (%d characters)", observed, utf8.RuneCountInString(observed)),
		})
	}
	v.Pass = len(v.Failures) == 0
	return v
}

// Evaluate applies the assertion a text fixture declares. UI fixtures are evaluated by
// package uicheck and are rejected here.
func Evaluate(f fixture.Fixture, observed string) (Verdict, error) {
	switch o := f.Outcome.(type) {
	case fixture.ExactMatch:
		return Exact(f.ID, o.Expected, observed), nil
	case fixture.AbsenceCheck:
		return Absence(f.ID, observed, o.Strict), nil
	default:
		return Verdict{}, fmt.Errorf("fixture %s: no text assertion for %T", f.ID, f.Outcome)
	}
}

// Hint explains near misses that are invisible when both strings are printed.
func Hint(expected, observed string) string {
	if expected == observed {
		return ""
	}
	switch {
	case norm.NFC.String(expected) == norm.NFC.String(observed):
		return "strings differ only in Unicode normalization (equal under NFC)"
	case stripJoiners(expected) == stripJoiners(observed):
		return "strings differ only in zero-width joiners/non-joiners"
	case strings.Join(strings.Fields(expected), " ") == strings.Join(strings.Fields(observed), " "):
		return "strings differ only in whitespace"
	}
	return ""
}

func stripJoiners(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\u200c' || r == '\u200d' {
			return -1
		}
		return r
	}, s)
}

func firstDifference(expected, observed string) string {
	er, or := []rune(expected), []rune(observed)
	n := min(len(er), len(or))
	for i := 0; i < n; i++ {
		if er[i] != or[i] {
			return fmt.Sprintf(" (first difference at character %d: expected %U, observed %U)", i, er[i], or[i])
		}
	}
	if len(er) != len(or) {
		return fmt.Sprintf(" (lengths differ: expected %d characters, observed %d)", len(er), len(or))
	}
	return ""
}
