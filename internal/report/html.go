package report

import (
	"bytes"
	_ "embed"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

//go:embed index.html.tmpl
var indexTemplate string

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"isImage": func(p string) bool { return strings.HasSuffix(p, ".png") },
}).Parse(indexTemplate))

// WriteHTML renders <runDir>/report/index.html and copies every referenced artifact into
// <runDir>/report/data so the bundle can be moved as one directory. Artifacts that no
// longer exist are skipped. It returns the index path.
func WriteHTML(runDir string, doc schema.TestResultsV1) (string, error) {
	reportDir := filepath.Join(runDir, HTMLDir)
	for _, s := range doc.Suites {
		for _, t := range s.Tests {
			for _, a := range t.Attempts {
				for _, rel := range a.Artifacts {
					src := filepath.Join(runDir, filepath.FromSlash(rel))
					if !store.FileExists(src) {
						continue
					}
					if err := store.CopyFile(src, filepath.Join(reportDir, "data", filepath.FromSlash(rel))); err != nil {
						return "", err
					}
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	path := filepath.Join(reportDir, "index.html")
	if err := store.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
