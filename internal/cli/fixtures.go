package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/marcohefti/singlish-lab/internal/fixture"
)

// selectFlags are shared by every command that loads fixtures.
type selectFlags struct {
	fixtures   string
	partitions []string
	ids        []string
	grep       string
	lengths    []string
}

func (sf *selectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&sf.fixtures, "fixtures", "", "fixture file (.yaml/.yml/.json); default is the built-in catalog")
	fs.StringSliceVar(&sf.partitions, "partition", nil, "partitions to include: positive,negative,ui")
	fs.StringSliceVar(&sf.ids, "id", nil, "fixture ids to include")
	fs.StringVar(&sf.grep, "grep", "", "id glob (Neg_Fun_000*) or title substring")
	fs.StringSliceVar(&sf.lengths, "length", nil, "length classes to include: S,M,L")
}

// load returns the fixture store and where it came from ("builtin" or the file path).
func (sf *selectFlags) load() (*fixture.Store, string, error) {
	source := "builtin"
	fixtures := fixture.Builtin()
	if p := strings.TrimSpace(sf.fixtures); p != "" {
		parsed, err := fixture.ParseFile(p)
		if err != nil {
			return nil, "", &CliError{Code: codeFixture, Message: err.Error()}
		}
		fixtures, source = parsed, p
	}
	st, err := fixture.NewStore(fixtures)
	if err != nil {
		return nil, "", &CliError{Code: codeFixture, Message: err.Error()}
	}
	return st, source, nil
}

func (sf *selectFlags) selector() (fixture.Selector, error) {
	sel := fixture.Selector{IDs: sf.ids, Grep: sf.grep}
	for _, p := range sf.partitions {
		part, err := fixture.ParsePartition(p)
		if err != nil {
			return fixture.Selector{}, usageError(err.Error())
		}
		sel.Partitions = append(sel.Partitions, part)
	}
	for _, l := range sf.lengths {
		switch fixture.Length(strings.ToUpper(strings.TrimSpace(l))) {
		case fixture.LengthShort, fixture.LengthMedium, fixture.LengthLong:
			sel.Lengths = append(sel.Lengths, fixture.Length(strings.ToUpper(strings.TrimSpace(l))))
		default:
			return fixture.Selector{}, usageError(fmt.Sprintf("invalid --length %q (expected S|M|L)", l))
		}
	}
	return sel, nil
}

// selectGroups loads the store and applies the selection. Selecting nothing is a usage error.
func (sf *selectFlags) selectGroups() (*fixture.Store, []fixture.Group, string, error) {
	st, source, err := sf.load()
	if err != nil {
		return nil, nil, "", err
	}
	sel, err := sf.selector()
	if err != nil {
		return nil, nil, "", err
	}
	groups := st.Select(sel)
	if fixture.CountFixtures(groups) == 0 {
		return nil, nil, "", usageError("no fixtures match the selection")
	}
	return st, groups, source, nil
}
