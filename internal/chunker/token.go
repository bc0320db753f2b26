package chunker

import "strings"

// CountTokens counts whitespace-delimited tokens. Every boundary the
// splitter produces is measured in this unit, so it must stay consistent
// with the word list Split windows over.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
