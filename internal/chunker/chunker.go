// Package chunker re-segments flattened section text into token-bounded,
// overlapping windows sized for embedding models.
package chunker

import (
	"strings"

	"github.com/edgarlab/filingest/internal/filing"
)

const (
	// DefaultLimit is the window size in whitespace tokens.
	DefaultLimit = 512
	// overlapPercent is the share of a window repeated at the start of the
	// next one so sentences straddling a boundary survive in one piece.
	overlapPercent = 12
)

// Overlap returns the token overlap paired with a window size.
func Overlap(limit int) int {
	return limit * overlapPercent / 100
}

// MetaFunc supplies provenance for a chunk spanning [start, end) in token
// space.
type MetaFunc func(start, end int) filing.ChunkMeta

// Split windows text into chunks of at most limit tokens, consecutive
// windows sharing overlap tokens. Text at or under the limit becomes
// exactly one chunk carrying the original string, newlines included; the
// windowed path re-joins tokens with single spaces. The last window ends
// exactly at the final token and is never padded backward. Zero-token text
// still yields one empty chunk, so a detected but empty section stays
// visible downstream.
func Split(text string, limit, overlap int, meta MetaFunc) []filing.Chunk {
	words := strings.Fields(text)
	total := len(words)
	if total <= limit {
		return []filing.Chunk{{Text: text, Meta: meta(0, total)}}
	}

	var chunks []filing.Chunk
	start := 0
	for start < total {
		end := min(start+limit, total)
		chunks = append(chunks, filing.Chunk{
			Text: strings.Join(words[start:end], " "),
			Meta: meta(start, end),
		})
		if end == total {
			break
		}
		start = end - overlap
	}
	return chunks
}
