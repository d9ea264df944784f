package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcohefti/singlish-lab/internal/fixture"
)

func TestExact_PassesOnlyOnIdenticalStrings(t *testing.T) {
	v := Exact("Pos_Fun_0001", "මම වැඩ කරනවා", "මම වැඩ කරනවා")
	assert.True(t, v.Pass)
	assert.Empty(t, v.Failures)

	v = Exact("Pos_Fun_0001", "මම වැඩ කරනවා", "මම වැඩ කරනවා.")
	assert.False(t, v.Pass)
	require.Len(t, v.Failures, 1)
	msg := v.Messages()[0]
	assert.Contains(t, msg, "Pos_Fun_0001")
	assert.Contains(t, msg, "මම වැඩ කරනවා")
	assert.Contains(t, msg, "lengths differ")
	assert.NotEmpty(t, v.Diff)
}

func TestExact_WhitespaceRunsAreSignificant(t *testing.T) {
	expected := "අපි       හෙට   උදේම"
	v := Exact("Pos_Fun_0013", expected, "අපි හෙට උදේම")
	assert.False(t, v.Pass)
	assert.Equal(t, "strings differ only in whitespace", v.Hint)
}

func TestExact_EmbeddedLatinAndPunctuationPreserved(t *testing.T) {
	expected := "Zoom meeting එකක් තියෙන්නේ 7.30 AM ට."
	assert.True(t, Exact("Pos_Fun_0020", expected, expected).Pass)
	assert.False(t, Exact("Pos_Fun_0020", expected, "Zoom meeting එකක් තියෙන්නේ 7.30 AM ට").Pass)
}

func TestExact_ReportsFirstDifferingCodePoint(t *testing.T) {
	v := Exact("x", "මේ", "මෙ")
	require.Len(t, v.Failures, 1)
	assert.Contains(t, v.Failures[0].Message, "U+0DDA")
	assert.Contains(t, v.Failures[0].Message, "U+0DD9")
}

func TestHint_JoinersAndNormalization(t *testing.T) {
	assert.Equal(t, "strings differ only in zero-width joiners/non-joiners", Hint("\u0DC1\u0DCA\u200D\u0DBB\u0DD3", "\u0DC1\u0DCA\u0DBB\u0DD3"))
	// U+00E9 vs e + U+0301.
	assert.Equal(t, "strings differ only in Unicode normalization (equal under NFC)", Hint("\u00e9", "e\u0301"))
	assert.Equal(t, "", Hint("a", "b"))
	assert.Equal(t, "", Hint("same", "same"))
}

func TestAbsence_NonStrict(t *testing.T) {
	assert.True(t, Absence("Neg_Fun_0003", "567844", false).Pass)
	assert.True(t, Absence("Neg_Fun_0003", "", false).Pass)

	v := Absence("Neg_Fun_0006", "dhina 7k @@@ යන්න", false)
	assert.False(t, v.Pass)
	require.Len(t, v.Failures, 1)
	assert.Equal(t, CheckNoNative, v.Failures[0].Check)
	assert.Contains(t, v.Failures[0].Message, "U+0DBA")
}

func TestAbsence_StrictReportsBothChecks(t *testing.T) {
	v := Absence("Neg_Fun_0004", "මේ ඉන්නේ mage හොදම යාලුවා.", true)
	assert.False(t, v.Pass)
	require.Len(t, v.Failures, 2)
	assert.Equal(t, CheckNoNative, v.Failures[0].Check)
	assert.Equal(t, CheckStrictEmpty, v.Failures[1].Check)

	v = Absence("Neg_Fun_0002", "@@@###", true)
	require.Len(t, v.Failures, 1)
	assert.Equal(t, CheckStrictEmpty, v.Failures[0].Check)

	assert.True(t, Absence("Neg_Fun_0001", "", true).Pass)
}

func TestAbsence_BlockBoundaries(t *testing.T) {
	assert.False(t, Absence("x", "\u0D80", false).Pass)
	assert.False(t, Absence("x", "\u0DFF", false).Pass)
	assert.True(t, Absence("x", "\u0D7F\u0E00", false).Pass)
}

func TestEvaluate_DispatchesOnOutcome(t *testing.T) {
	v, err := Evaluate(fixture.Fixture{ID: "p", Outcome: fixture.ExactMatch{Expected: "මම"}}, "මම")
	require.NoError(t, err)
	assert.Equal(t, ModeExact, v.Mode)
	assert.True(t, v.Pass)

	v, err = Evaluate(fixture.Fixture{ID: "n", Outcome: fixture.AbsenceCheck{Strict: true}}, "")
	require.NoError(t, err)
	assert.Equal(t, ModeAbsence, v.Mode)
	assert.True(t, v.Pass)

	_, err = Evaluate(fixture.Fixture{ID: "u", Outcome: fixture.UIPredicate{}}, "")
	assert.Error(t, err)
}
