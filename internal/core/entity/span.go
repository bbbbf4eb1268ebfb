package entity

import "encoding/json"

// Span is a contiguous piece of input text with zero or more entity classifications
// Start and End are byte offsets into the classified input, -1 when unknown
type Span struct {
	text       string
	start, end int
	entities   []Entity
}

// NewSpan copies entities so the span stays immutable
func NewSpan(text string, start, end int, entities ...Entity) Span {
	return Span{
		text:     text,
		start:    start,
		end:      end,
		entities: append([]Entity(nil), entities...),
	}
}

// Text returns the matched source text
func (s Span) Text() string { return s.text }

// Start returns the byte offset of the span start, -1 when unknown
func (s Span) Start() int { return s.start }

// End returns the byte offset one past the span end, -1 when unknown
func (s Span) End() int { return s.end }

// Entities returns a copy of the classifications in classifier order
func (s Span) Entities() []Entity { return append([]Entity(nil), s.entities...) }

// Len returns the number of classifications
func (s Span) Len() int { return len(s.entities) }

// At returns the i-th classification
func (s Span) At(i int) Entity { return s.entities[i] }

// WithText returns a copy of s carrying text
func (s Span) WithText(text string) Span {
	s.text = text
	s.entities = append([]Entity(nil), s.entities...)
	return s
}

// WithOffsets returns a copy of s carrying new offsets
func (s Span) WithOffsets(start, end int) Span {
	s.start, s.end = start, end
	s.entities = append([]Entity(nil), s.entities...)
	return s
}

// MarshalJSON renders the span with its entities
func (s Span) MarshalJSON() ([]byte, error) {
	ents := s.entities
	if ents == nil {
		ents = []Entity{}
	}
	return json.Marshal(struct {
		Text     string   `json:"text"`
		Start    int      `json:"start"`
		End      int      `json:"end"`
		Entities []Entity `json:"entities"`
	}{Text: s.text, Start: s.start, End: s.end, Entities: ents})
}

// Result is the ordered list of spans for one classified input; empty is not an error
type Result []Span

// EntityCount returns the total number of classifications across spans
func (r Result) EntityCount() int {
	n := 0
	for _, s := range r {
		n += len(s.entities)
	}
	return n
}
