package parser

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/filing"
	"github.com/edgarlab/filingest/internal/textnorm"
)

// captureTable lifts an HTML table into a TableRecord. The header row is
// the first row containing <th> cells; every other row is data. Cell text
// is normalized the same way as narrative text.
func captureTable(tbl *html.Node, pre, post string) filing.TableRecord {
	sel := goquery.NewDocumentFromNode(tbl)

	var all [][]string
	headerIdx := -1
	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := []string{}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		if headerIdx == -1 && tr.Find("th").Length() > 0 {
			headerIdx = i
		}
		all = append(all, cells)
	})

	headers := []string{}
	rows := [][]string{}
	for i, row := range all {
		if i == headerIdx {
			headers = row
			continue
		}
		rows = append(rows, row)
	}
	return filing.TableRecord{
		Headers:     headers,
		Rows:        rows,
		PreContext:  pre,
		PostContext: post,
	}
}

func cellText(cell *goquery.Selection) string {
	if n := cell.Get(0); n != nil {
		return textnorm.Normalize(textContent(n))
	}
	return ""
}

// renderTable converts a captured table into the content blocks that feed
// the chunker, per the form's style.
func renderTable(style catalog.TableStyle, rec filing.TableRecord) ([]string, error) {
	switch style {
	case catalog.TableStructJSON:
		s, err := rec.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode table: %w", err)
		}
		return []string{s}, nil
	case catalog.TablePlaceholder:
		return []string{rec.PreContext, "[[TABLE]]", rec.PostContext}, nil
	default:
		return []string{rec.PreContext + "\n\n" + rec.Markdown() + "\n\n" + rec.PostContext}, nil
	}
}
