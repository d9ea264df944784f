package fixture

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/marcohefti/singlish-lab/internal/ids"
)

func Validate(f Fixture) error {
	if strings.TrimSpace(f.ID) == "" || ids.SanitizeComponent(f.ID) == "" {
		return fmt.Errorf("fixture missing/invalid id")
	}
	switch f.Meta.Length {
	case "", LengthShort, LengthMedium, LengthLong:
	default:
		return fmt.Errorf("fixture %q: invalid length %q (expected S|M|L)", f.ID, f.Meta.Length)
	}
	switch f.ExpectedStatus {
	case StatusPass, StatusFail:
	default:
		return fmt.Errorf("fixture %q: invalid expectedStatus %q (expected pass|fail)", f.ID, f.ExpectedStatus)
	}

	switch o := f.Outcome.(type) {
	case nil:
		return fmt.Errorf("fixture %q: missing expected outcome", f.ID)
	case ExactMatch:
		if o.Expected == "" {
			return fmt.Errorf("fixture %q: exact-match expected text is empty (use an absence check)", f.ID)
		}
	case AbsenceCheck:
	case UIPredicate:
		switch o.Kind {
		case CheckNativeTextVisible:
			if o.Within <= 0 {
				return fmt.Errorf("fixture %q: %s requires within > 0", f.ID, o.Kind)
			}
			if !o.WantVisible {
				return fmt.Errorf("fixture %q: %s only asserts that native text appears (wantVisible must be true)", f.ID, o.Kind)
			}
		case CheckInputsVisibleAfterResize:
			if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
				return fmt.Errorf("fixture %q: %s requires a positive viewport", f.ID, o.Kind)
			}
		default:
			return fmt.Errorf("fixture %q: unknown ui check kind %q", f.ID, o.Kind)
		}
		if o.SettleBefore < 0 {
			return fmt.Errorf("fixture %q: settleBefore must be >= 0", f.ID)
		}
	default:
		return fmt.Errorf("fixture %q: unsupported outcome type %T", f.ID, o)
	}
	return nil
}

type Finding struct {
	FixtureID string `json:"fixtureId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

const (
	LintStrictEcho      = "SGL_W_STRICT_ECHO"
	LintDefectAsInvalid = "SGL_W_DEFECT_AS_INVALID"
	LintTrackedNoDefect = "SGL_W_TRACKED_NO_DEFECT"
)

// Lint flags fixtures whose declared expectations can contradict each other. It never
// changes how a fixture is evaluated.
func Lint(f Fixture) []Finding {
	var out []Finding
	if a, ok := f.Outcome.(AbsenceCheck); ok {
		if a.Strict && hasEchoableRunes(f.Input) {
			out = append(out, Finding{
				FixtureID: f.ID,
				Code:      LintStrictEcho,
				Message:   "strict emptiness on an input with digits/punctuation/symbols: a script-free echo would still fail",
			})
		}
		if f.Defect.ProductExpected != "" {
			out = append(out, Finding{
				FixtureID: f.ID,
				Code:      LintDefectAsInvalid,
				Message:   "absence check on a fixture that documents a product defect (partial transliteration), not invalid input",
			})
		}
	}
	if f.Tracked() && f.Defect.IsZero() {
		out = append(out, Finding{
			FixtureID: f.ID,
			Code:      LintTrackedNoDefect,
			Message:   "expectedStatus fail without a recorded defect",
		})
	}
	return out
}

func hasEchoableRunes(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
