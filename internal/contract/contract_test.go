package contract

import (
	"strings"
	"testing"
)

func TestBuild_UniqueIDsAndCodes(t *testing.T) {
	c := Build("0.0.0-dev")

	seen := map[string]bool{}
	for _, e := range c.Errors {
		if !strings.HasPrefix(e.Code, "SGL_E_") {
			t.Fatalf("unexpected code prefix: %q", e.Code)
		}
		if seen[e.Code] {
			t.Fatalf("duplicate error code %q", e.Code)
		}
		seen[e.Code] = true
	}

	seen = map[string]bool{}
	for _, cmd := range c.Commands {
		if !strings.HasPrefix(cmd.Usage, "sgl "+cmd.ID) {
			t.Fatalf("usage of %q does not start with its id: %q", cmd.ID, cmd.Usage)
		}
		if seen[cmd.ID] {
			t.Fatalf("duplicate command %q", cmd.ID)
		}
		seen[cmd.ID] = true
	}

	for _, a := range c.Artifacts {
		if !strings.HasPrefix(a.PathPattern, ".sgl/") {
			t.Fatalf("artifact %q outside .sgl: %q", a.ID, a.PathPattern)
		}
	}
}
