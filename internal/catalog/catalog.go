// Package catalog defines the canonical section layout of each supported
// SEC form type and the heuristics that map raw heading text onto it.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/edgarlab/filingest/internal/textnorm"
)

// TableStyle selects how a captured table is rendered into the text stream
// that feeds the chunker.
type TableStyle int

const (
	// TableMarkdown joins pre-context, a GFM table, and post-context into
	// one block.
	TableMarkdown TableStyle = iota
	// TableStructJSON embeds the whole table record as one compact JSON
	// block.
	TableStructJSON
	// TablePlaceholder emits pre-context, the literal "[[TABLE]]" marker,
	// and post-context as three separate blocks.
	TablePlaceholder
)

type phrase struct {
	needle string
	label  string
}

// Catalog is the section matcher for one form type. Item-number anchors are
// tried first; when no item number is present anywhere in the text, the
// canonical labels are tried as case-insensitive substrings in order.
type Catalog struct {
	Form               string
	Labels             []string
	SubheadingMaxWords int
	Style              TableStyle
	Extensions         []string
	XML                bool

	headingItem *regexp.Regexp
	items       map[string]string
	phrases     []phrase
}

func newCatalog(form string, labels []string, maxWords int, style TableStyle, labelItem, headingItem *regexp.Regexp) *Catalog {
	c := &Catalog{
		Form:               form,
		Labels:             labels,
		SubheadingMaxWords: maxWords,
		Style:              style,
		Extensions:         []string{".htm", ".html"},
		headingItem:        headingItem,
		items:              make(map[string]string),
		phrases:            make([]phrase, 0, len(labels)),
	}
	for _, label := range labels {
		if m := labelItem.FindStringSubmatch(label); m != nil {
			c.items[itemKey(m[1])] = label
		}
		c.phrases = append(c.phrases, phrase{
			needle: strings.ToLower(textnorm.Normalize(label)),
			label:  label,
		})
	}
	return c
}

func newXMLCatalog(form string, labels []string) *Catalog {
	c := newCatalog(form, labels, defaultSubheadingWords, TableMarkdown, stdItem, stdItem)
	c.Extensions = []string{".xml"}
	c.XML = true
	return c
}

func itemKey(id string) string {
	return "ITEM " + strings.ToUpper(id)
}

// Match resolves a fragment of document text to a canonical section label.
// An item-number hit is authoritative: if the text mentions an item number
// that is not in this catalog, the text is not a heading at all and the
// phrase pass is skipped.
func (c *Catalog) Match(text string) (string, bool) {
	cleaned := textnorm.Normalize(text)
	if m := c.headingItem.FindStringSubmatch(cleaned); m != nil {
		label, ok := c.items[itemKey(m[1])]
		return label, ok
	}
	lowered := strings.ToLower(cleaned)
	for _, p := range c.phrases {
		if strings.Contains(lowered, p.needle) {
			return p.label, true
		}
	}
	return "", false
}

// Item looks up a canonical label by its item key, e.g. "ITEM 7" or
// "ITEM 1.01".
func (c *Catalog) Item(key string) (string, bool) {
	label, ok := c.items[strings.ToUpper(key)]
	return label, ok
}

// AcceptsFile reports whether a filename has one of the catalog's source
// extensions.
func (c *Catalog) AcceptsFile(name string) bool {
	ext := strings.ToLower(name)
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i:]
	} else {
		return false
	}
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ForForm returns the catalog registered for a form type.
func ForForm(form string) (*Catalog, error) {
	c, ok := catalogs[form]
	if !ok {
		return nil, fmt.Errorf("unknown form type %q (known: %s)", form, strings.Join(Forms(), ", "))
	}
	return c, nil
}

// Forms lists the supported form types in stable order.
func Forms() []string {
	out := make([]string, 0, len(catalogs))
	for form := range catalogs {
		out = append(out, form)
	}
	sort.Strings(out)
	return out
}
