// Package jsonx extracts JSON values embedded in untrusted free text.
//
// The upstream text generator returns prose that usually, but not always,
// contains a JSON payload. These helpers are intentionally lenient: they scan
// for the first balanced object or array, validate it, and report ok=false
// instead of failing on garbage. They must only be used at the oracle
// boundary; internally-generated payloads go through encoding/json directly.
package jsonx

import "encoding/json"

// ExtractObject returns the first balanced {...} substring of raw that is
// valid JSON. ok is false when no such substring exists.
func ExtractObject(raw string) (json.RawMessage, bool) {
	return extract(raw, '{', '}')
}

// ExtractArray returns the first balanced [...] substring of raw that is
// valid JSON. ok is false when no such substring exists.
func ExtractArray(raw string) (json.RawMessage, bool) {
	return extract(raw, '[', ']')
}

func extract(raw string, open, close byte) (json.RawMessage, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidate := raw[start : i+1]
				if json.Valid([]byte(candidate)) {
					return json.RawMessage(candidate), true
				}
				// Malformed candidate: keep scanning after it.
				start = -1
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return nil, false
}
