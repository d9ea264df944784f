// Package script defines the native-script contract: the Sinhala Unicode block,
// U+0D80 through U+0DFF inclusive. Unassigned code points inside the block count too,
// so unicode.Sinhala (assigned characters only) is deliberately not used.
package script

import "unicode/utf8"

const (
	NativeFirst rune = 0x0D80
	NativeLast  rune = 0x0DFF
)

func IsNative(r rune) bool {
	return r >= NativeFirst && r <= NativeLast
}

func ContainsNative(s string) bool {
	for _, r := range s {
		if IsNative(r) {
			return true
		}
	}
	return false
}

func CountNative(s string) int {
	n := 0
	for _, r := range s {
		if IsNative(r) {
			n++
		}
	}
	return n
}

// FirstNative returns the first native rune and its byte offset.
func FirstNative(s string) (rune, int, bool) {
	for i, r := range s {
		if IsNative(r) {
			return r, i, true
		}
	}
	return utf8.RuneError, -1, false
}
