package filing

import "strings"

// TableRecord is a captured table plus the text that surrounded it in the
// source. Rows holds data rows only; the header row, when one was found,
// lives in Headers. Context strings may be empty, and always are for the
// XML ownership forms.
type TableRecord struct {
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	PreContext  string     `json:"pre_context"`
	PostContext string     `json:"post_context"`
}

// Markdown renders the record as a GFM pipe table. A table with neither
// headers nor rows renders as the empty string; with rows but no headers
// the header cells are blank and sized to the first row.
func (t TableRecord) Markdown() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}
	headers := t.Headers
	if len(headers) == 0 {
		headers = make([]string, len(t.Rows[0]))
	}
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, row(headers), row(seps))
	for _, r := range t.Rows {
		lines = append(lines, row(r))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func row(cells []string) string {
	return "|" + strings.Join(cells, "|") + "|"
}

// JSON renders the record as one compact JSON string with HTML characters
// left unescaped. Quarterly filings embed tables into the text stream in
// this form.
func (t TableRecord) JSON() (string, error) {
	b, err := marshalNoEscape(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
