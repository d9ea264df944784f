package cli

import (
	"errors"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/report"
)

const (
	codeUsage           = codes.Usage
	codeIO              = codes.IO
	codeConfig          = codes.Config
	codeFixture         = codes.Fixture
	codeBrowser         = codes.Browser
	codeHistory         = codes.History
	codeMissingArtifact = codes.MissingArtifact
)

// Exit codes. A run with failing fixtures exits 1, the same as an operational error; the
// stderr code tells them apart.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func usageError(msg string) *CliError { return &CliError{Code: codeUsage, Message: msg} }

// asCliError keeps codes raised below the cli (report) and wraps anything else in code.
func asCliError(err error, code string) *CliError {
	var ce *CliError
	if errors.As(err, &ce) {
		return ce
	}
	var re *report.CliError
	if errors.As(err, &re) {
		return &CliError{Code: re.Code, Message: re.Message}
	}
	return &CliError{Code: code, Message: err.Error()}
}
