package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/store"
)

type fixtureRow struct {
	ID             string `json:"id"`
	Partition      string `json:"partition"`
	Name           string `json:"name,omitempty"`
	Length         string `json:"length,omitempty"`
	Input          string `json:"input"`
	Expected       string `json:"expected"`
	ExpectedStatus string `json:"expectedStatus"`
}

func rowFor(f fixture.Fixture) fixtureRow {
	row := fixtureRow{
		ID:             f.ID,
		Partition:      string(f.Partition()),
		Name:           f.Meta.Name,
		Length:         string(f.Meta.Length),
		Input:          f.Input,
		ExpectedStatus: string(f.ExpectedStatus),
	}
	switch o := f.Outcome.(type) {
	case fixture.ExactMatch:
		row.Expected = o.Expected
	case fixture.AbsenceCheck:
		row.Expected = "no native script"
		if o.Strict {
			row.Expected = "empty"
		}
	case fixture.UIPredicate:
		row.Expected = string(o.Kind)
	}
	return row
}

func (r Runner) newListCmd() *cobra.Command {
	var (
		sel     selectFlags
		jsonOut bool
		export  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the selected fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, groups, _, err := sel.selectGroups()
			if err != nil {
				return err
			}
			if export != "" {
				return exportFixtures(export, groups)
			}
			var rows []fixtureRow
			for _, g := range groups {
				for _, f := range g.Fixtures {
					rows = append(rows, rowFor(f))
				}
			}
			if jsonOut {
				return writeJSON(r.Stdout, rows)
			}
			return writeFixtureTable(r.Stdout, rows)
		},
	}
	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	cmd.Flags().StringVar(&export, "export", "", "write the selection as a fixture file (.yaml/.yml/.json)")
	return cmd
}

// exportFixtures writes a fixture file that `--fixtures` reads back unchanged.
func exportFixtures(path string, groups []fixture.Group) error {
	var all []fixture.Fixture
	for _, g := range groups {
		all = append(all, g.Fixtures...)
	}
	fv := fixture.Encode(all)

	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(fv)
	case ".json":
		b, err = json.MarshalIndent(fv, "", "  ")
		b = append(b, '\n')
	default:
		return usageError(fmt.Sprintf("--export %q: expected a .yaml, .yml or .json path", path))
	}
	if err != nil {
		return &CliError{Code: codeIO, Message: err.Error()}
	}
	if err := store.WriteFileAtomic(path, b); err != nil {
		return &CliError{Code: codeIO, Message: err.Error()}
	}
	return nil
}

// writeFixtureTable aligns columns by terminal cells; inputs and expected outputs mix Latin
// and Sinhala.
func writeFixtureTable(w io.Writer, rows []fixtureRow) error {
	const maxCell = 48
	headers := []string{"ID", "PARTITION", "LEN", "STATUS", "INPUT", "EXPECTED"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{row.ID, row.Partition, row.Length, row.ExpectedStatus, oneLine(row.Input), oneLine(row.Expected)})
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, c := range cells {
		for i, v := range c {
			if n := runewidth.StringWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCell {
			widths[i] = maxCell
		}
	}

	line := func(vals []string) error {
		var b strings.Builder
		for i, v := range vals {
			v = runewidth.Truncate(v, widths[i], "…")
			if i == len(vals)-1 {
				b.WriteString(v)
				break
			}
			b.WriteString(runewidth.FillRight(v, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}
	if err := line(headers); err != nil {
		return &CliError{Code: codeIO, Message: err.Error()}
	}
	for _, c := range cells {
		if err := line(c); err != nil {
			return &CliError{Code: codeIO, Message: err.Error()}
		}
	}
	return nil
}

func oneLine(s string) string {
	return strings.NewReplacer("\n", `\n`, "\t", `\t`).Replace(s)
}
