// Package filing holds the data model for a parsed filing: the document
// envelope, its canonical sections, captured tables, and the chunks the
// pipeline derives from them. The JSON shape of these types is the artifact
// contract consumed by the downstream embedding jobs, so field order and
// section order are fixed here rather than left to map iteration.
package filing

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// Meta identifies one filing.
type Meta struct {
	Ticker     string `json:"ticker"`
	FormType   string `json:"form_type"`
	FiscalYear int    `json:"fiscal_year"`
	Accession  string `json:"accession"`
	SourceURL  string `json:"source_url"`
	LocalPath  string `json:"local_path"`
	ParsedAt   string `json:"parsed_at"`
}

// ChunkMeta carries the provenance attached to every chunk.
type ChunkMeta struct {
	Section    string   `json:"section"`
	StartToken int      `json:"start_token"`
	EndToken   int      `json:"end_token"`
	TokenCount int      `json:"token_count"`
	Accession  string   `json:"accession"`
	FilingDate string   `json:"filing_date"`
	Ticker     string   `json:"ticker"`
	SourceURL  string   `json:"source_url"`
	Tags       []string `json:"tags"`
}

// Chunk is one retrieval unit.
type Chunk struct {
	Text string    `json:"text"`
	Meta ChunkMeta `json:"meta"`
}

// SectionState accumulates everything routed into one canonical section.
// Missing stays true until a heading for the section is seen; sections
// created by the scaffold but never detected keep their empty collections.
type SectionState struct {
	ContentBlocks []string       `json:"content_blocks"`
	Subsections   *OrderedBlocks `json:"subsections"`
	Tables        []TableRecord  `json:"tables"`
	Chunks        []Chunk        `json:"chunks"`
	Missing       bool           `json:"missing"`
}

func newSectionState() *SectionState {
	return &SectionState{
		ContentBlocks: []string{},
		Subsections:   NewOrderedBlocks(),
		Tables:        []TableRecord{},
		Chunks:        []Chunk{},
		Missing:       true,
	}
}

// FlattenText joins the section's blocks and then every subsection's blocks,
// in insertion order, with newlines. This is the exact text the chunker
// splits, so changing the join changes token offsets.
func (s *SectionState) FlattenText() string {
	parts := make([]string, 0, len(s.ContentBlocks))
	parts = append(parts, s.ContentBlocks...)
	for _, title := range s.Subsections.Titles() {
		parts = append(parts, s.Subsections.Get(title)...)
	}
	return strings.Join(parts, "\n")
}

// Document is the artifact written for one filing.
type Document struct {
	Meta     Meta
	order    []string
	sections map[string]*SectionState
}

// NewDocument builds the empty section scaffold in catalog order. Every
// label gets a state up front so missing sections still appear in the
// artifact.
func NewDocument(meta Meta, labels []string) *Document {
	d := &Document{
		Meta:     meta,
		order:    append([]string(nil), labels...),
		sections: make(map[string]*SectionState, len(labels)),
	}
	for _, label := range labels {
		d.sections[label] = newSectionState()
	}
	return d
}

// Section returns the state for a canonical label. The label must come
// from the catalog the document was built with.
func (d *Document) Section(label string) *SectionState {
	return d.sections[label]
}

// Labels returns the section order the document was built with.
func (d *Document) Labels() []string {
	return d.order
}

// AddBlock appends a content block to a section and marks it present.
// Empty text is ignored so absent source fields cannot resurrect a section.
func (d *Document) AddBlock(label, text string) {
	if text == "" {
		return
	}
	s := d.sections[label]
	s.ContentBlocks = append(s.ContentBlocks, text)
	s.Missing = false
}

// MarshalJSON writes meta first and the sections as an object in catalog
// order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"meta":`)
	meta, err := marshalNoEscape(d.Meta)
	if err != nil {
		return nil, err
	}
	buf.Write(meta)
	buf.WriteString(`,"sections":{`)
	for i, label := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNoEscape(d.sections[label])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// marshalNoEscape is json.Marshal without HTML escaping, so ampersands and
// angle brackets in filing text stay readable in the artifact.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode writes the document as indented JSON with a trailing newline.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
