package fixture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuiltin_LoadsIntoStore(t *testing.T) {
	s, err := NewStore(Builtin())
	require.NoError(t, err)
	assert.Equal(t, 41, s.Len())

	groups := s.Select(Selector{})
	require.Len(t, groups, 3)
	assert.Equal(t, Positive, groups[0].Partition)
	assert.Len(t, groups[0].Fixtures, 29)
	assert.Equal(t, Negative, groups[1].Partition)
	assert.Len(t, groups[1].Fixtures, 10)
	assert.Equal(t, UI, groups[2].Partition)
	assert.Len(t, groups[2].Fixtures, 2)

	// Declaration order is preserved inside a group.
	assert.Equal(t, "Pos_Fun_0001", groups[0].Fixtures[0].ID)
	assert.Equal(t, "Pos_Fun_0029", groups[0].Fixtures[28].ID)
	assert.Equal(t, "Neg_Fun_0010", groups[1].Fixtures[9].ID)
}

func TestBuiltin_ConcreteScenarios(t *testing.T) {
	s, err := NewStore(Builtin())
	require.NoError(t, err)

	cases := []struct {
		id       string
		input    string
		expected string
	}{
		{"Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"},
		{"Pos_Fun_0004", "oyaata badaginidha?", "ඔයාට බඩගිනිද?"},
	}
	for _, c := range cases {
		f, ok := s.Get(c.id)
		require.True(t, ok, c.id)
		assert.Equal(t, c.input, f.Input)
		assert.Equal(t, ExactMatch{Expected: c.expected}, f.Outcome)
		assert.Equal(t, StatusPass, f.ExpectedStatus)
	}

	empty, ok := s.Get("Neg_Fun_0001")
	require.True(t, ok)
	assert.Equal(t, "", empty.Input)
	assert.Equal(t, AbsenceCheck{Strict: true}, empty.Outcome)

	numeric, ok := s.Get("Neg_Fun_0003")
	require.True(t, ok)
	assert.Equal(t, "567844", numeric.Input)
	assert.Equal(t, AbsenceCheck{Strict: false}, numeric.Outcome)

	defect, ok := s.Get("Neg_Fun_0004")
	require.True(t, ok)
	assert.True(t, defect.Tracked())
	assert.Equal(t, "මේ ඉන්නෙ මගෙ හොදම යාලුවා.", defect.Defect.ProductExpected)
	assert.Equal(t, "මේ ඉන්නේ mage හොදම යාලුවා.", defect.Defect.KnownActual)
}

func TestBuiltin_WhitespaceRunsAreKeptVerbatim(t *testing.T) {
	s, err := NewStore(Builtin())
	require.NoError(t, err)
	f, ok := s.Get("Pos_Fun_0013")
	require.True(t, ok)
	assert.Contains(t, f.Input, "Api       heta   udheema")
	exp := f.Outcome.(ExactMatch).Expected
	assert.Contains(t, exp, "අපි       හෙට   උදේම")
}

func TestBuiltin_ReturnsIndependentCopies(t *testing.T) {
	a := Builtin()
	a[0].Input = "mutated"
	b := Builtin()
	assert.Equal(t, "mama vaeda karanavaa", b[0].Input)

	s, err := NewStore(Builtin())
	require.NoError(t, err)
	all := s.All()
	all[0].Input = "mutated"
	f, _ := s.Get("Pos_Fun_0001")
	assert.Equal(t, "mama vaeda karanavaa", f.Input)
}

func TestNewStore_RejectsDuplicatesAndInvalid(t *testing.T) {
	_, err := NewStore([]Fixture{
		{ID: "A", Outcome: AbsenceCheck{}},
		{ID: "A", Outcome: AbsenceCheck{}},
	})
	require.ErrorContains(t, err, "duplicate fixture id")

	_, err = NewStore([]Fixture{
		{ID: "Neg_Fun_1", Outcome: AbsenceCheck{}},
		{ID: "neg-fun-1", Outcome: AbsenceCheck{}},
	})
	require.ErrorContains(t, err, `fixture ids "Neg_Fun_1" and "neg-fun-1" share artifact directory fixtures/neg-fun-1`)

	_, err = NewStore([]Fixture{{ID: "A"}})
	require.ErrorContains(t, err, "missing expected outcome")

	_, err = NewStore([]Fixture{{ID: "A", Outcome: ExactMatch{}}})
	require.ErrorContains(t, err, "empty")

	_, err = NewStore([]Fixture{{ID: "A", Outcome: UIPredicate{Kind: CheckNativeTextVisible}}})
	require.ErrorContains(t, err, "within")

	_, err = NewStore([]Fixture{{ID: "A", Outcome: UIPredicate{Kind: "hover"}, ExpectedStatus: StatusPass}})
	require.ErrorContains(t, err, "unknown ui check kind")

	_, err = NewStore(nil)
	require.Error(t, err)
}

func TestSelect_Filters(t *testing.T) {
	s, err := NewStore(Builtin())
	require.NoError(t, err)

	groups := s.Select(Selector{Partitions: []Partition{Negative}})
	require.Len(t, groups, 1)
	assert.Equal(t, Negative, groups[0].Partition)

	groups = s.Select(Selector{IDs: []string{"Pos_UI_Fun_0001", "Pos_Fun_0002"}})
	require.Len(t, groups, 2)
	assert.Equal(t, "Pos_Fun_0002", groups[0].Fixtures[0].ID)
	assert.Equal(t, "Pos_UI_Fun_0001", groups[1].Fixtures[0].ID)

	groups = s.Select(Selector{Grep: "Neg_Fun_000*"})
	assert.Equal(t, 9, CountFixtures(groups))

	groups = s.Select(Selector{Grep: "greeting"})
	require.Equal(t, 1, CountFixtures(groups))
	assert.Equal(t, "Pos_Fun_0008", groups[0].Fixtures[0].ID)

	groups = s.Select(Selector{Lengths: []Length{LengthLong}, Partitions: []Partition{Positive}})
	assert.Equal(t, 9, CountFixtures(groups))
}

func TestLint_FlagsStrictEchoConflicts(t *testing.T) {
	findings := Lint(Fixture{ID: "x", Input: "dhina 7k @@@", Outcome: AbsenceCheck{Strict: true}, ExpectedStatus: StatusPass})
	require.Len(t, findings, 1)
	assert.Equal(t, LintStrictEcho, findings[0].Code)

	assert.Empty(t, Lint(Fixture{ID: "x", Input: "dhina 7k @@@", Outcome: AbsenceCheck{Strict: false}, ExpectedStatus: StatusPass}))
	assert.Empty(t, Lint(Fixture{ID: "x", Input: "", Outcome: AbsenceCheck{Strict: true}, ExpectedStatus: StatusPass}))

	findings = Lint(Fixture{ID: "x", Outcome: ExactMatch{Expected: "a"}, ExpectedStatus: StatusFail})
	require.Len(t, findings, 1)
	assert.Equal(t, LintTrackedNoDefect, findings[0].Code)
}

func TestLint_BuiltinDefectFixturesAreFlagged(t *testing.T) {
	s, err := NewStore(Builtin())
	require.NoError(t, err)
	byCode := map[string][]string{}
	for _, f := range s.Lint() {
		byCode[f.Code] = append(byCode[f.Code], f.FixtureID)
	}
	assert.ElementsMatch(t, []string{"Neg_Fun_0004", "Neg_Fun_0005", "Neg_Fun_0007", "Neg_Fun_0008"}, byCode[LintDefectAsInvalid])
	assert.Contains(t, byCode[LintStrictEcho], "Neg_Fun_0004")
	assert.Empty(t, byCode[LintTrackedNoDefect])
}

func TestParseFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
fixtures:
  - id: Pos_Extra_0001
    name: simple
    input: mama
    length: s
    expect:
      exact: "මම"
  - id: Neg_Extra_0001
    input: "12345"
    expectedStatus: fail
    defect:
      summary: numbers are echoed
    expect:
      absence:
        strict: true
  - id: UI_Extra_0001
    input: ""
    expect:
      ui:
        kind: inputs_visible_after_resize
        viewport: {width: 320, height: 480}
        settleBeforeMs: 500
`), 0o644))

	fs, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.Equal(t, ExactMatch{Expected: "මම"}, fs[0].Outcome)
	assert.Equal(t, LengthShort, fs[0].Meta.Length)
	assert.Equal(t, StatusFail, fs[1].ExpectedStatus)
	assert.Equal(t, "numbers are echoed", fs[1].Defect.Summary)
	ui := fs[2].Outcome.(UIPredicate)
	assert.Equal(t, CheckInputsVisibleAfterResize, ui.Kind)
	assert.Equal(t, Viewport{Width: 320, Height: 480}, ui.Viewport)
	assert.Equal(t, 500*time.Millisecond, ui.SettleBefore)
	assert.True(t, ui.WantVisible)
}

func TestParseFile_RejectsAmbiguousExpect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"fixtures":[
  {"id":"x","input":"a","expect":{"exact":"අ","absence":{"strict":true}}}
]}`), 0o644))
	_, err := ParseFile(path)
	require.ErrorContains(t, err, "exactly one of exact|absence|ui")

	require.NoError(t, os.WriteFile(path, []byte(`{"version":2,"fixtures":[]}`), 0o644))
	_, err = ParseFile(path)
	require.ErrorContains(t, err, "unsupported fixture file version")
}

func TestParseFile_RejectsHiddenNativeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
fixtures:
  - id: UI_Extra_0002
    input: mama
    expect:
      ui:
        kind: native_text_visible
        withinMs: 2000
        wantVisible: false
`), 0o644))
	_, err := ParseFile(path)
	require.ErrorContains(t, err, "wantVisible must be true")

	require.NoError(t, os.WriteFile(path, []byte(`version: 1
fixtures:
  - id: UI_Extra_0002
    input: mama
    expect:
      ui:
        kind: native_text_visible
        withinMs: 2000
`), 0o644))
	fs, err := ParseFile(path)
	require.NoError(t, err)
	assert.True(t, fs[0].Outcome.(UIPredicate).WantVisible)
}

func TestEncode_RoundTripsBuiltinThroughYAML(t *testing.T) {
	b, err := yaml.Marshal(Encode(Builtin()))
	require.NoError(t, err)

	var fv FileV1
	require.NoError(t, yaml.Unmarshal(b, &fv))
	got, err := fv.Decode()
	require.NoError(t, err)

	s, err := NewStore(Builtin())
	require.NoError(t, err)
	assert.Equal(t, s.All(), got)
}
