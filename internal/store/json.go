package store

import (
	"bytes"
	"encoding/json"
)

// MarshalIndent encodes v the way every sgl artifact is written: two-space indent, no HTML
// escaping (observed Sinhala text and punctuation stay legible), trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteJSONAtomic(path string, v any) error {
	b, err := MarshalIndent(v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, b)
}
