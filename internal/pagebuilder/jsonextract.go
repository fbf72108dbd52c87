package pagebuilder

import (
	"encoding/json"
)

// ExtractFirstJSONObject scans prose for the first balanced, valid JSON
// object and returns it. AI drafting responses routinely wrap their payload
// in explanatory text or markdown fences; this is the single place that
// scraping happens. Returns ok=false when no well-formed object exists.
func ExtractFirstJSONObject(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		if end, found := matchObject(text, start); found {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
			// Balanced but invalid (e.g. trailing commas); keep scanning
			// from the next brace.
		}
	}
	return "", false
}

// matchObject returns the index of the brace closing the object opened at
// start, honoring strings and escapes.
func matchObject(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
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
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
