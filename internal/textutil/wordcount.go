// Package textutil provides small text analysis helpers used by the
// transformation pipeline.
package textutil

import "strings"

// WordCount counts whitespace separated words in s. Empty and
// whitespace-only strings count as zero.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
