package fixture

import (
	"fmt"
	"path"
	"strings"

	"github.com/marcohefti/singlish-lab/internal/ids"
)

// Store is loaded once per run. It hands out copies; nothing a test does reaches back into it.
type Store struct {
	fixtures []Fixture
	byID     map[string]int
	// byDir guards the artifact directory each id maps to.
	byDir map[string]string
}

func NewStore(fixtures []Fixture) (*Store, error) {
	s := &Store{
		fixtures: make([]Fixture, 0, len(fixtures)),
		byID:     make(map[string]int, len(fixtures)),
		byDir:    make(map[string]string, len(fixtures)),
	}
	for _, f := range fixtures {
		if f.ExpectedStatus == "" {
			f.ExpectedStatus = StatusPass
		}
		if err := Validate(f); err != nil {
			return nil, err
		}
		if _, dup := s.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate fixture id %q", f.ID)
		}
		dir := ids.FixtureDirName(f.ID)
		if other, clash := s.byDir[dir]; clash {
			return nil, fmt.Errorf("fixture ids %q and %q share artifact directory fixtures/%s", other, f.ID, dir)
		}
		s.byDir[dir] = f.ID
		s.byID[f.ID] = len(s.fixtures)
		s.fixtures = append(s.fixtures, f)
	}
	if len(s.fixtures) == 0 {
		return nil, fmt.Errorf("fixture store is empty")
	}
	return s, nil
}

func (s *Store) Len() int { return len(s.fixtures) }

func (s *Store) All() []Fixture {
	out := make([]Fixture, len(s.fixtures))
	copy(out, s.fixtures)
	return out
}

func (s *Store) Get(id string) (Fixture, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Fixture{}, false
	}
	return s.fixtures[i], true
}

// Selector narrows a run. Zero value selects everything.
type Selector struct {
	Partitions []Partition
	IDs        []string
	// Grep is a path.Match pattern, or a plain substring, tested against the fixture title.
	Grep    string
	Lengths []Length
}

func (sel Selector) matches(f Fixture) bool {
	if len(sel.Partitions) > 0 && !containsPartition(sel.Partitions, f.Partition()) {
		return false
	}
	if len(sel.IDs) > 0 {
		found := false
		for _, id := range sel.IDs {
			if id == f.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(sel.Lengths) > 0 {
		found := false
		for _, l := range sel.Lengths {
			if l == f.Meta.Length {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if g := strings.TrimSpace(sel.Grep); g != "" {
		title := f.Title()
		if ok, err := path.Match(g, f.ID); err == nil && ok {
			return true
		}
		return strings.Contains(strings.ToLower(title), strings.ToLower(g))
	}
	return true
}

func containsPartition(ps []Partition, p Partition) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}

// Group is one partition's fixtures in declaration order.
type Group struct {
	Partition Partition
	Fixtures  []Fixture
}

// Select returns matching fixtures grouped by partition (positive, negative, ui), keeping
// declaration order inside each group. Empty groups are omitted.
func (s *Store) Select(sel Selector) []Group {
	var groups []Group
	for _, p := range Partitions {
		g := Group{Partition: p}
		for _, f := range s.fixtures {
			if f.Partition() == p && sel.matches(f) {
				g.Fixtures = append(g.Fixtures, f)
			}
		}
		if len(g.Fixtures) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// Lint runs Lint over every fixture.
func (s *Store) Lint() []Finding {
	var out []Finding
	for _, f := range s.fixtures {
		out = append(out, Lint(f)...)
	}
	return out
}

func CountFixtures(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Fixtures)
	}
	return n
}
