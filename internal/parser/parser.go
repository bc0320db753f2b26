// Package parser turns raw filing bodies into populated documents. The
// HTML walker handles narrative forms; ownership forms arrive as XML with
// a fixed schema and get their own parser.
package parser

import (
	"io"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/filing"
)

// Parser fills a document's sections from one filing body. The document
// must have been scaffolded from the same catalog the parser was built
// with.
type Parser interface {
	Parse(r io.Reader, doc *filing.Document) error
}

// ForForm returns the parser matching a catalog's source format.
func ForForm(cat *catalog.Catalog) Parser {
	if cat.XML {
		return &OwnershipParser{cat: cat}
	}
	return &HTMLParser{cat: cat}
}
