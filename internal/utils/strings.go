package utils

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxStringLength is used by TruncateString when maxLen is not positive.
const DefaultMaxStringLength = 500

// TruncateString shortens s to at most maxLen runes and records the original
// byte length in a suffix. Strings that already fit are returned unchanged.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s... (truncated, total: %d bytes)", string(runes[:maxLen]), len(s))
}
