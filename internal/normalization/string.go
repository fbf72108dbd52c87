package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ParseSlug reduces arbitrary text to a URL-safe slug: lowercase, spaces and
// runs of non-alphanumerics collapsed to single hyphens.
func ParseSlug(input string) string {
	lowered := strings.ToLower(strings.TrimSpace(input))
	var b strings.Builder
	lastHyphen := true
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
