package filing

import (
	"path/filepath"
	"regexp"
	"strings"
)

var filingDateRe = regexp.MustCompile(`\d{8}`)

// AccessionFromPath derives the accession number from a downloaded filing's
// filename: the stem after the last underscore, e.g.
// "aapl_10-K_2024_0000320193-24-000123.htm" -> "0000320193-24-000123".
// A stem without underscores is its own accession.
func AccessionFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")
	return parts[len(parts)-1]
}

// FilingDate extracts the first eight-digit run from an accession, or ""
// when it has none. Accessions produced by the downloader embed the filing
// date this way; other accession shapes yield whatever eight digits come
// first.
func FilingDate(accession string) string {
	return filingDateRe.FindString(accession)
}
