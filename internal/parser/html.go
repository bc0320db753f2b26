package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/filing"
	"github.com/edgarlab/filingest/internal/textnorm"
)

// HTMLParser walks a narrative filing (10-K, 10-Q, 8-K, DEF 14A) and routes
// text into the catalog's canonical sections.
type HTMLParser struct {
	cat *catalog.Catalog
}

// NewHTMLParser builds a walker for one form catalog.
func NewHTMLParser(cat *catalog.Catalog) *HTMLParser {
	return &HTMLParser{cat: cat}
}

// skipTags are subtrees that carry no filing content.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"noscript": true,
}

// blockTags force descent during flattening: an element containing any of
// these is a container, not an atomic run of text.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "dd": true, "details": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true,
	"table": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "ul": true,
}

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeTable
)

// contentNode is one atomic unit of the flattened document: either a run
// of text with its bold flag already resolved, or a whole table.
type contentNode struct {
	kind nodeKind
	text string // normalized; for tables, the table's full text
	node *html.Node
	bold bool
}

// Parse flattens the body into atomic content nodes and runs the section
// state machine over them in document order. Each node is tried first as a
// section heading, then as a bold or uppercase subheading, then captured
// as a table or appended as content to whatever section is open. Text
// before the first recognized heading is dropped.
func (p *HTMLParser) Parse(r io.Reader, doc *filing.Document) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	prune(root)

	body := findBody(root)
	if body == nil {
		body = root
	}

	var nodes []contentNode
	flatten(body, &nodes)

	var section, sub string
	for i, cn := range nodes {
		if label, ok := p.cat.Match(cn.text); ok {
			section, sub = label, ""
			doc.Section(label).Missing = false
			continue
		}
		if section == "" {
			continue
		}
		if cn.bold || upperHeading(cn.text, p.cat.SubheadingMaxWords) {
			sub = cn.text
			continue
		}

		st := doc.Section(section)
		if cn.kind == nodeTable {
			var pre, post string
			if i > 0 {
				pre = nodes[i-1].text
			}
			if i+1 < len(nodes) {
				post = nodes[i+1].text
			}
			rec := captureTable(cn.node, pre, post)
			st.Tables = append(st.Tables, rec)
			blocks, err := renderTable(p.cat.Style, rec)
			if err != nil {
				return err
			}
			for _, b := range blocks {
				if b = strings.TrimSpace(b); b != "" {
					st.ContentBlocks = append(st.ContentBlocks, b)
				}
			}
			continue
		}

		if sub == "" {
			st.ContentBlocks = append(st.ContentBlocks, cn.text)
		} else {
			st.Subsections.Add(sub, cn.text)
		}
	}
	return nil
}

// flatten reduces the node tree to a flat list of atomic content nodes.
// Tables are always atomic. An element with no block-level descendants is
// atomic text; anything else is descended into, with loose text nodes
// between blocks emitted on their own.
func flatten(n *html.Node, out *[]contentNode) {
	switch n.Type {
	case html.ElementNode:
		if n.Data == "table" {
			txt := textnorm.Normalize(textContent(n))
			if txt != "" {
				*out = append(*out, contentNode{kind: nodeTable, text: txt, node: n, bold: styleBold(n)})
			}
			return
		}
		if !containsBlock(n) {
			txt := textnorm.Normalize(textContent(n))
			if txt != "" {
				*out = append(*out, contentNode{kind: nodeText, text: txt, node: n, bold: boldElement(n)})
			}
			return
		}
	case html.TextNode:
		txt := textnorm.Normalize(n.Data)
		if txt != "" {
			*out = append(*out, contentNode{kind: nodeText, text: txt, node: n})
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, out)
	}
}

func containsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if blockTags[c.Data] || containsBlock(c) {
			return true
		}
	}
	return false
}

// prune drops non-content subtrees so their text can never leak into
// sections or table cells.
func prune(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == html.ElementNode && skipTags[c.Data] {
			n.RemoveChild(c)
		} else {
			prune(c)
		}
		c = next
	}
}

// boldElement reports whether an atomic element reads as bold: it is a
// b/strong tag, its inline style says so, or every piece of its text sits
// under a bold descendant.
func boldElement(n *html.Node) bool {
	if n.Data == "b" || n.Data == "strong" || styleBold(n) {
		return true
	}
	return wrappedBold(n, false)
}

func wrappedBold(n *html.Node, inBold bool) bool {
	switch n.Type {
	case html.TextNode:
		return inBold || strings.TrimSpace(n.Data) == ""
	case html.ElementNode:
		if n.Data == "b" || n.Data == "strong" || styleBold(n) {
			inBold = true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !wrappedBold(c, inBold) {
			return false
		}
	}
	return true
}

func styleBold(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		style := strings.ToLower(a.Val)
		return strings.Contains(style, "bold") || strings.Contains(style, "font-weight:700")
	}
	return false
}

// upperHeading is the typography-free subheading heuristic: all-caps text
// of more than one word, up to the form's limit.
func upperHeading(txt string, maxWords int) bool {
	if !isUpper(txt) {
		return false
	}
	n := len(strings.Fields(txt))
	return n > 1 && n <= maxWords
}

// isUpper mirrors the usual string semantics: at least one cased rune and
// no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// textContent joins the trimmed text nodes under n with single spaces, so
// inline markup boundaries become word boundaries.
func textContent(n *html.Node) string {
	var parts []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(parts, " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
