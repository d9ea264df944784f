package redact

import (
	"net/url"
	"regexp"
	"strings"
)

type Applied struct {
	Names []string
}

var (
	// Keep this minimal but real: redaction must be bounded + default-safe.
	reBearer = regexp.MustCompile(`(?i)\b(Bearer\s+)[A-Za-z0-9._~+/=-]{16,}`)
	reJWT    = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\b`)
	reAPIKey = regexp.MustCompile(`\b(?:sk|pk|ghp|gho)_?-?[A-Za-z0-9]{16,}\b`)
)

// sensitiveParams are query parameter names whose values never reach a trace.
var sensitiveParams = []string{"token", "access_token", "api_key", "apikey", "key", "auth", "signature", "sig", "session"}

func Text(s string) (string, Applied) {
	applied := Applied{}
	out := s

	if reBearer.MatchString(out) {
		out = reBearer.ReplaceAllString(out, "${1}[REDACTED:BEARER_TOKEN]")
		applied.Names = append(applied.Names, "bearer_token")
	}
	if reJWT.MatchString(out) {
		out = reJWT.ReplaceAllString(out, "[REDACTED:JWT]")
		applied.Names = append(applied.Names, "jwt")
	}
	if reAPIKey.MatchString(out) {
		out = reAPIKey.ReplaceAllString(out, "[REDACTED:API_KEY]")
		applied.Names = append(applied.Names, "api_key")
	}

	return out, applied
}

// URL blanks sensitive query parameter values and any userinfo. Unparseable input falls
// back to Text.
func URL(raw string) (string, Applied) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return Text(raw)
	}
	applied := Applied{}
	if u.User != nil {
		u.User = nil
		applied.Names = append(applied.Names, "userinfo")
	}
	if u.RawQuery != "" {
		q := u.Query()
		hit := false
		for name := range q {
			for _, s := range sensitiveParams {
				if strings.EqualFold(name, s) {
					q.Set(name, "REDACTED")
					hit = true
				}
			}
		}
		if hit {
			u.RawQuery = q.Encode()
			applied.Names = append(applied.Names, "query_secret")
		}
	}
	return u.String(), applied
}
