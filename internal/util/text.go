package util

import "strings"

// SanitizeToken strips invalid UTF-8 and NUL bytes from a token and trims
// surrounding whitespace, so surface forms join with exactly one space.
func SanitizeToken(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	return strings.TrimSpace(sanitized)
}

// SanitizeTokens returns a sanitized copy of tokens.
func SanitizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = SanitizeToken(t)
	}
	return out
}
