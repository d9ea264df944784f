package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileV1 is the on-disk fixture format (.yaml/.yml or .json). Adding a fixture means
// appending a record.
type FileV1 struct {
	Version  int         `json:"version" yaml:"version"`
	Fixtures []FixtureV1 `json:"fixtures" yaml:"fixtures"`
}

type FixtureV1 struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name,omitempty" yaml:"name,omitempty"`
	Input          string    `json:"input" yaml:"input"`
	Expect         ExpectV1  `json:"expect" yaml:"expect"`
	ExpectedStatus string    `json:"expectedStatus,omitempty" yaml:"expectedStatus,omitempty"`
	Defect         *DefectV1 `json:"defect,omitempty" yaml:"defect,omitempty"`
	Length         string    `json:"length,omitempty" yaml:"length,omitempty"`
	Category       string    `json:"category,omitempty" yaml:"category,omitempty"`
	GrammarFocus   string    `json:"grammarFocus,omitempty" yaml:"grammarFocus,omitempty"`
	QualityFocus   string    `json:"qualityFocus,omitempty" yaml:"qualityFocus,omitempty"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// ExpectV1 is a tagged union: exactly one member must be set.
type ExpectV1 struct {
	Exact   *string    `json:"exact,omitempty" yaml:"exact,omitempty"`
	Absence *AbsenceV1 `json:"absence,omitempty" yaml:"absence,omitempty"`
	UI      *UIV1      `json:"ui,omitempty" yaml:"ui,omitempty"`
}

type AbsenceV1 struct {
	Strict bool `json:"strict" yaml:"strict"`
}

type UIV1 struct {
	Kind           string    `json:"kind" yaml:"kind"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
	SettleBeforeMs int64     `json:"settleBeforeMs,omitempty" yaml:"settleBeforeMs,omitempty"`
	WithinMs       int64     `json:"withinMs,omitempty" yaml:"withinMs,omitempty"`
	Viewport       *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
	WantVisible    *bool     `json:"wantVisible,omitempty" yaml:"wantVisible,omitempty"`
}

type DefectV1 struct {
	Summary         string `json:"summary,omitempty" yaml:"summary,omitempty"`
	ProductExpected string `json:"productExpected,omitempty" yaml:"productExpected,omitempty"`
	KnownActual     string `json:"knownActual,omitempty" yaml:"knownActual,omitempty"`
}

func ParseFile(path string) ([]Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fv FileV1
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fv); err != nil {
			return nil, fmt.Errorf("invalid fixture yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &fv); err != nil {
			return nil, fmt.Errorf("invalid fixture json: %w", err)
		}
	}
	return fv.Decode()
}

func (fv FileV1) Decode() ([]Fixture, error) {
	if fv.Version == 0 {
		fv.Version = 1
	}
	if fv.Version != 1 {
		return nil, fmt.Errorf("unsupported fixture file version %d (expected 1)", fv.Version)
	}
	if len(fv.Fixtures) == 0 {
		return nil, fmt.Errorf("fixture file has no fixtures")
	}

	out := make([]Fixture, 0, len(fv.Fixtures))
	for i, raw := range fv.Fixtures {
		f, err := raw.decode()
		if err != nil {
			id := strings.TrimSpace(raw.ID)
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("fixture %s: %w", id, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (r FixtureV1) decode() (Fixture, error) {
	f := Fixture{
		ID:    strings.TrimSpace(r.ID),
		Input: r.Input,
		Meta: Metadata{
			Name:         strings.TrimSpace(r.Name),
			Length:       Length(strings.ToUpper(strings.TrimSpace(r.Length))),
			Category:     r.Category,
			GrammarFocus: r.GrammarFocus,
			QualityFocus: r.QualityFocus,
			Description:  r.Description,
		},
	}
	switch strings.ToLower(strings.TrimSpace(r.ExpectedStatus)) {
	case "", "pass":
		f.ExpectedStatus = StatusPass
	case "fail":
		f.ExpectedStatus = StatusFail
	default:
		return Fixture{}, fmt.Errorf("invalid expectedStatus %q (expected pass|fail)", r.ExpectedStatus)
	}
	if r.Defect != nil {
		f.Defect = Defect{
			Summary:         r.Defect.Summary,
			ProductExpected: r.Defect.ProductExpected,
			KnownActual:     r.Defect.KnownActual,
		}
	}

	set := 0
	if r.Expect.Exact != nil {
		set++
		f.Outcome = ExactMatch{Expected: *r.Expect.Exact}
	}
	if r.Expect.Absence != nil {
		set++
		f.Outcome = AbsenceCheck{Strict: r.Expect.Absence.Strict}
	}
	if r.Expect.UI != nil {
		set++
		u := r.Expect.UI
		p := UIPredicate{
			Description:  u.Description,
			Kind:         UICheckKind(strings.TrimSpace(u.Kind)),
			SettleBefore: time.Duration(u.SettleBeforeMs) * time.Millisecond,
			Within:       time.Duration(u.WithinMs) * time.Millisecond,
			WantVisible:  true,
		}
		if u.Viewport != nil {
			p.Viewport = *u.Viewport
		}
		if u.WantVisible != nil {
			p.WantVisible = *u.WantVisible
		}
		f.Outcome = p
	}
	if set != 1 {
		return Fixture{}, fmt.Errorf("expect must set exactly one of exact|absence|ui (got %d)", set)
	}
	if err := Validate(f); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// Encode is the inverse of Decode; `sgl list --export` uses it to seed a fixture file from
// the builtin catalog.
func Encode(fixtures []Fixture) FileV1 {
	fv := FileV1{Version: 1, Fixtures: make([]FixtureV1, 0, len(fixtures))}
	for _, f := range fixtures {
		r := FixtureV1{
			ID:           f.ID,
			Name:         f.Meta.Name,
			Input:        f.Input,
			Length:       string(f.Meta.Length),
			Category:     f.Meta.Category,
			GrammarFocus: f.Meta.GrammarFocus,
			QualityFocus: f.Meta.QualityFocus,
			Description:  f.Meta.Description,
		}
		if f.ExpectedStatus == StatusFail {
			r.ExpectedStatus = string(StatusFail)
		}
		if !f.Defect.IsZero() {
			r.Defect = &DefectV1{
				Summary:         f.Defect.Summary,
				ProductExpected: f.Defect.ProductExpected,
				KnownActual:     f.Defect.KnownActual,
			}
		}
		switch o := f.Outcome.(type) {
		case ExactMatch:
			exp := o.Expected
			r.Expect.Exact = &exp
		case AbsenceCheck:
			r.Expect.Absence = &AbsenceV1{Strict: o.Strict}
		case UIPredicate:
			want := o.WantVisible
			u := &UIV1{
				Kind:           string(o.Kind),
				Description:    o.Description,
				SettleBeforeMs: o.SettleBefore.Milliseconds(),
				WithinMs:       o.Within.Milliseconds(),
				WantVisible:    &want,
			}
			if o.Viewport != (Viewport{}) {
				vp := o.Viewport
				u.Viewport = &vp
			}
			r.Expect.UI = u
		}
		fv.Fixtures = append(fv.Fixtures, r)
	}
	return fv
}
