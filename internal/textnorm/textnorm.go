// Package textnorm canonicalizes filing text before section matching and
// chunking. Every string that reaches a catalog matcher, a table cell, or a
// chunker goes through Normalize exactly once; running it again is a no-op.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// zeroWidth strips the invisible joiners EDGAR HTML tends to sprinkle
// between letters of a heading, which would otherwise break regex matches.
var zeroWidth = strings.NewReplacer(
	"​", "", // zero-width space
	"‌", "", // zero-width non-joiner
	"‍", "", // zero-width joiner
	"⁠", "", // word joiner
)

// punctFold maps the usual typographic punctuation onto ASCII equivalents.
// Anything not covered here and not decomposable to ASCII is dropped.
var punctFold = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"…", "...", // ellipsis
	"•", "*", // bullet
	" ", " ", // no-break space
	" ", " ", // figure space
	" ", " ", // thin space
	" ", " ", // narrow no-break space
)

// foldASCII decomposes accented letters, removes the combining marks, and
// then drops whatever still is not ASCII.
var foldASCII = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Normalize canonicalizes a fragment of filing text: zero-width characters
// removed, Unicode composed and transliterated to ASCII, the common HTML
// entities decoded, runs of horizontal whitespace collapsed to single
// spaces, and the result trimmed. Newlines survive so block boundaries
// stay visible to the chunker. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = zeroWidth.Replace(s)
	s = norm.NFC.String(s)
	s = punctFold.Replace(s)
	s, _, _ = transform.String(foldASCII, s)
	s = decodeEntities(s)
	s = collapseSpaces(s)
	return strings.TrimSpace(s)
}

// decodeEntities resolves the two entities that survive upstream HTML text
// extraction. "&amp;" is decoded to a fixpoint so doubly escaped source
// ("&amp;amp;") cannot leave an encoded ampersand behind.
func decodeEntities(s string) string {
	for strings.Contains(s, "&amp;") {
		s = strings.ReplaceAll(s, "&amp;", "&")
	}
	return strings.ReplaceAll(s, "&nbsp;", " ")
}

// collapseSpaces rewrites every maximal run of horizontal whitespace as one
// space. Newlines pass through untouched.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\f', '\v':
			pending = true
		case '\n':
			if pending {
				b.WriteByte(' ')
				pending = false
			}
			b.WriteByte('\n')
		default:
			if pending {
				b.WriteByte(' ')
				pending = false
			}
			b.WriteRune(r)
		}
	}
	if pending {
		b.WriteByte(' ')
	}
	return b.String()
}
