//go:build wasip1 || js

package subword_bpe

import "strings"

// splitProse falls back to whitespace splitting where prose is unavailable.
func splitProse(text string) []string {
	return strings.Fields(text)
}
