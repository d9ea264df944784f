package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	reDashes  = regexp.MustCompile(`-+`)
	reRunID   = regexp.MustCompile(`^[0-9]{8}-[0-9]{6}Z-[0-9a-f]{6}$`)
)

// NewRunID returns YYYYMMDD-HHMMSSZ-<hex6>; lexical order equals start order.
func NewRunID(now time.Time) (string, error) {
	prefix := now.UTC().Format("20060102-150405Z")

	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return prefix + "-" + hex.EncodeToString(b[:]), nil
}

func IsValidRunID(s string) bool {
	return reRunID.MatchString(strings.TrimSpace(s))
}

// SanitizeComponent maps a fixture id like "Pos_Fun_0001" onto a path-safe "pos-fun-0001".
func SanitizeComponent(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_", "-")
	v = reInvalid.ReplaceAllString(v, "-")
	v = reDashes.ReplaceAllString(v, "-")
	v = strings.Trim(v, "-")
	return v
}

// AttemptDirName names the artifact directory of one execution of a fixture.
// attempt is 1-based; attempt 2 is the first suite-level retry.
func AttemptDirName(fixtureID string, attempt int) string {
	if attempt < 1 {
		attempt = 1
	}
	return fmt.Sprintf("%s/attempt-%d", FixtureDirName(fixtureID), attempt)
}

// FixtureDirName is the per-fixture directory under fixtures/. Distinct ids can share one.
func FixtureDirName(fixtureID string) string {
	if f := SanitizeComponent(fixtureID); f != "" {
		return f
	}
	return "fixture"
}
