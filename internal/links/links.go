// Package links loads the per-ticker source-URL index written by the
// filing downloader alongside the raw documents.
package links

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table maps accession numbers to SEC source URLs for one ticker and one
// form type.
type Table map[string]string

// index mirrors links.json: URLs keyed by form type, then year, then
// "<form>_<year>_<accession>".
type index struct {
	Ticker string                                  `json:"ticker"`
	Links  map[string]map[string]map[string]string `json:"links"`
}

// Load reads <root>/<ticker>/links.json and flattens the entries for one
// form type. A missing file yields an empty table, since older download
// runs did not write one; a malformed file is an error because it usually
// means a download run was cut short mid-write.
func Load(root, ticker, form string) (Table, error) {
	path := filepath.Join(root, ticker, "links.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("read links for %s: %w", ticker, err)
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode links for %s: %w", ticker, err)
	}
	table := make(Table)
	for formType, years := range idx.Links {
		if formType != form {
			continue
		}
		for _, filings := range years {
			for key, url := range filings {
				parts := strings.Split(key, "_")
				table[parts[len(parts)-1]] = url
			}
		}
	}
	return table, nil
}
