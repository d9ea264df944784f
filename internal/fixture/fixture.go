// Package fixture is the fixture store: immutable test cases pairing a Singlish input with
// the outcome the target page must produce. Every fixture carries exactly one outcome
// variant, and the variant alone decides which assertion rule applies.
package fixture

import (
	"fmt"
	"time"
)

type Partition string

const (
	Positive Partition = "positive"
	Negative Partition = "negative"
	UI       Partition = "ui"
)

// Partitions is the execution and reporting order.
var Partitions = []Partition{Positive, Negative, UI}

func (p Partition) Title() string {
	switch p {
	case Positive:
		return "Positive Functional Tests"
	case Negative:
		return "Negative Functional Tests"
	case UI:
		return "UI Functionality Tests"
	default:
		return string(p)
	}
}

func ParsePartition(s string) (Partition, error) {
	for _, p := range Partitions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown partition %q (expected positive|negative|ui)", s)
}

// Outcome is the partition-specific payload. Implemented by ExactMatch, AbsenceCheck and
// UIPredicate only.
type Outcome interface {
	Partition() Partition
	isOutcome()
}

// ExactMatch requires the rendered output to be byte-identical to Expected.
type ExactMatch struct {
	Expected string
}

func (ExactMatch) Partition() Partition { return Positive }
func (ExactMatch) isOutcome()           {}

// AbsenceCheck requires zero native-script code points in the output. Strict additionally
// requires the output to be empty.
type AbsenceCheck struct {
	Strict bool
}

func (AbsenceCheck) Partition() Partition { return Negative }
func (AbsenceCheck) isOutcome()           {}

type UICheckKind string

const (
	// CheckNativeTextVisible: after typing the input, some element containing native-script
	// text becomes visible within Within.
	CheckNativeTextVisible UICheckKind = "native_text_visible"
	// CheckInputsVisibleAfterResize: after resizing to Viewport, the input controls are
	// visible iff WantVisible.
	CheckInputsVisibleAfterResize UICheckKind = "inputs_visible_after_resize"
)

type Viewport struct {
	Width  int64 `json:"width" yaml:"width"`
	Height int64 `json:"height" yaml:"height"`
}

// UIPredicate asserts a structural property of the rendered document instead of text.
type UIPredicate struct {
	Description string
	Kind        UICheckKind
	// SettleBefore is waited after input/resize and before the predicate is polled.
	SettleBefore time.Duration
	Within       time.Duration
	Viewport     Viewport
	WantVisible  bool
}

func (UIPredicate) Partition() Partition { return UI }
func (UIPredicate) isOutcome()           {}

type Status string

const (
	StatusPass Status = "pass"
	// StatusFail marks a fixture that documents a known product defect: a failure is
	// expected and tracked rather than treated as news.
	StatusFail Status = "fail"
)

type Length string

const (
	LengthShort  Length = "S"
	LengthMedium Length = "M"
	LengthLong   Length = "L"
)

// Defect records what the product should render against what the target renders today.
type Defect struct {
	Summary         string
	ProductExpected string
	KnownActual     string
}

func (d Defect) IsZero() bool {
	return d.Summary == "" && d.ProductExpected == "" && d.KnownActual == ""
}

// Metadata is descriptive only: it groups and labels reports and never selects a rule.
type Metadata struct {
	Name         string
	Length       Length
	Category     string
	GrammarFocus string
	QualityFocus string
	Description  string
}

type Fixture struct {
	ID             string
	Input          string
	Outcome        Outcome
	ExpectedStatus Status
	Defect         Defect
	Meta           Metadata
}

func (f Fixture) Partition() Partition {
	if f.Outcome == nil {
		return ""
	}
	return f.Outcome.Partition()
}

// Tracked reports whether the fixture is expected to fail against the current target.
func (f Fixture) Tracked() bool { return f.ExpectedStatus == StatusFail }

// Title is the test name used by reporters: "<id> - <name>".
func (f Fixture) Title() string {
	if f.Meta.Name == "" {
		return f.ID
	}
	return f.ID + " - " + f.Meta.Name
}
