package filing

import "bytes"

// OrderedBlocks is a string-keyed multimap that remembers insertion order.
// Subsections must serialize in document order, which a plain map cannot
// guarantee.
type OrderedBlocks struct {
	titles []string
	blocks map[string][]string
}

func NewOrderedBlocks() *OrderedBlocks {
	return &OrderedBlocks{blocks: make(map[string][]string)}
}

// Add appends text under a title, registering the title on first use.
func (o *OrderedBlocks) Add(title, text string) {
	if _, ok := o.blocks[title]; !ok {
		o.titles = append(o.titles, title)
	}
	o.blocks[title] = append(o.blocks[title], text)
}

// Titles returns the insertion order of subsection titles.
func (o *OrderedBlocks) Titles() []string {
	return o.titles
}

// Get returns the blocks recorded under a title.
func (o *OrderedBlocks) Get(title string) []string {
	return o.blocks[title]
}

// Len reports the number of distinct titles.
func (o *OrderedBlocks) Len() int {
	return len(o.titles)
}

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (o *OrderedBlocks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, title := range o.titles {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(title)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNoEscape(o.blocks[title])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
