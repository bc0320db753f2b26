package chunker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/edgarlab/filingest/internal/textnorm"
)

// capSeq matches a maximal run of capitalized words; digits, underscores,
// and apostrophes may appear inside a word but not start one.
var capSeq = regexp.MustCompile(`[A-Z][\w']*(?:\s+[A-Z][\w']*)*`)

// ExtractTags derives keyword tags from a section heading: every maximal
// capitalized phrase, plus the final word of each multi-word phrase. The
// heading is normalized first but keeps its original case. Tags are deduped
// and sorted case-insensitively, byte order breaking ties.
func ExtractTags(heading string) []string {
	cleaned := textnorm.Normalize(heading)
	seen := make(map[string]struct{})
	for _, phrase := range capSeq.FindAllString(cleaned, -1) {
		seen[phrase] = struct{}{}
		if words := strings.Fields(phrase); len(words) > 1 {
			seen[words[len(words)-1]] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, b := strings.ToLower(tags[i]), strings.ToLower(tags[j])
		if a == b {
			return tags[i] < tags[j]
		}
		return a < b
	})
	return tags
}
