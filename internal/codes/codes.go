// Package codes holds the stable error and outcome codes printed by sgl.
// Codes are part of the CLI surface: scripts grep stderr for them.
package codes

const (
	Usage           = "SGL_E_USAGE"
	IO              = "SGL_E_IO"
	Config          = "SGL_E_CONFIG"
	Fixture         = "SGL_E_FIXTURE"
	Browser         = "SGL_E_BROWSER"
	Navigation      = "SGL_E_NAVIGATION"
	Timeout         = "SGL_E_TIMEOUT"
	History         = "SGL_E_HISTORY"
	MissingArtifact = "SGL_E_MISSING_ARTIFACT"

	// Artifact integrity findings reported by `sgl validate`.
	InvalidJSON       = "SGL_E_INVALID_JSON"
	SchemaUnsupported = "SGL_E_SCHEMA_UNSUPPORTED"
	IDMismatch        = "SGL_E_ID_MISMATCH"
	Containment       = "SGL_E_CONTAINMENT"
	Incomplete        = "SGL_E_INCOMPLETE"

	ExpectExact       = "SGL_E_EXPECT_EXACT"
	ExpectNoNative    = "SGL_E_EXPECT_NO_NATIVE"
	ExpectEmpty       = "SGL_E_EXPECT_EMPTY"
	ExpectUIPredicate = "SGL_E_EXPECT_UI"
)
