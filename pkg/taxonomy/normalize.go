package taxonomy

import "strings"

// Normalize prepares text for skill matching. Only case is folded: whitespace and
// punctuation are left alone since boundary detection belongs to the matcher.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// normalizeSkill is applied to every taxonomy entry at load time.
func normalizeSkill(s string) string {
	return Normalize(strings.TrimSpace(s))
}
