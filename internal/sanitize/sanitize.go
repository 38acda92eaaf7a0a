package sanitize

import (
	"strings"
	"unicode"
)

// Config contains configuration for input sanitization
type Config struct {
	MaxStringLength int // Maximum allowed length in runes (0 = unlimited)
	KeepNewlines    bool
}

// DefaultHeaderConfig is used for values that end up in e-mail headers
func DefaultHeaderConfig() Config {
	return Config{
		MaxStringLength: 200,
		KeepNewlines:    false,
	}
}

// DefaultBodyConfig is used for free-text e-mail bodies; content is never truncated
func DefaultBodyConfig() Config {
	return Config{
		KeepNewlines: true,
	}
}

// DefaultLineConfig is used for single-line values that must reach the
// recipient in full (name and address lines, reply-to)
func DefaultLineConfig() Config {
	return Config{}
}

// String sanitizes a string input by:
// - Removing null bytes and control characters
// - Trimming whitespace
// - Truncating to max length
func String(input string, config Config) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if unicode.IsControl(r) {
			if config.KeepNewlines && (r == '\n' || r == '\t') {
				result.WriteRune(r)
				continue
			}
			if r == '\r' || r == '\n' || r == '\t' {
				result.WriteRune(' ')
			}
			continue
		}
		result.WriteRune(r)
	}
	input = strings.TrimSpace(result.String())

	if config.MaxStringLength > 0 {
		runes := []rune(input)
		if len(runes) > config.MaxStringLength {
			input = string(runes[:config.MaxStringLength])
		}
	}

	return input
}

// HeaderValue strips CR/LF and other control chars so the value cannot
// inject extra headers, and caps it for the subject line
func HeaderValue(input string) string {
	return String(input, DefaultHeaderConfig())
}

// Line strips control chars like HeaderValue but keeps the full value
func Line(input string) string {
	return String(input, DefaultLineConfig())
}

// Body sanitizes a multi-line message body; CRLF is normalized to LF
func Body(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return String(input, DefaultBodyConfig())
}
