package sentence

import (
	"encoding/json"
	"strings"
)

// Span is a half-open [Start, End) range of runes in a reference text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether other lies inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Word represents a word of a phrase, with POS, lemma and its position in the
// original document. A Word is a value: once built it can not be modified.
type Word struct {
	text   string
	posTag string
	lemma  string
	start  int
	end    int
}

// NewWord validates and builds a Word. The text, posTag and lemma are stored
// trimmed.
func NewWord(text, posTag, lemma string, start, end int) (Word, error) {
	if err := Validate(text, posTag, lemma, start, end); err != nil {
		return Word{}, err
	}

	return Word{
		text:   strings.TrimSpace(text),
		posTag: strings.TrimSpace(posTag),
		lemma:  strings.TrimSpace(lemma),
		start:  start,
		end:    end,
	}, nil
}

// Validate checks the fields of a word without building it.
func Validate(text, posTag, lemma string, start, end int) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Value: text, Reason: "is empty"}
	}

	if strings.TrimSpace(posTag) == "" {
		return &ValidationError{Field: "posTag", Value: posTag, Reason: "is empty"}
	}

	if strings.TrimSpace(lemma) == "" {
		return &ValidationError{Field: "lemma", Value: lemma, Reason: "is empty"}
	}

	if start < 0 {
		return &ValidationError{Field: "start", Value: start, Reason: "must be greater or equal to zero"}
	}

	if end < start {
		return &ValidationError{Field: "end", Value: end, Reason: "must be greater or equal to start"}
	}

	return nil
}

func (w Word) Text() string   { return w.text }
func (w Word) PosTag() string { return w.posTag }
func (w Word) Lemma() string  { return w.lemma }
func (w Word) Start() int     { return w.start }
func (w Word) End() int       { return w.end }

func (w Word) Span() Span {
	return Span{Start: w.start, End: w.end}
}

// IsZero reports whether w was never set.
func (w Word) IsZero() bool {
	return w == Word{}
}

func (w Word) String() string {
	return w.text
}

type wordJSON struct {
	Text   string `json:"text"`
	PosTag string `json:"tag"`
	Lemma  string `json:"lemma"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

func (w Word) MarshalJSON() ([]byte, error) {
	return json.Marshal(wordJSON{w.text, w.posTag, w.lemma, w.start, w.end})
}

// UnmarshalJSON decodes a word and validates it like NewWord does.
func (w *Word) UnmarshalJSON(data []byte) error {
	var wj wordJSON
	if err := json.Unmarshal(data, &wj); err != nil {
		return err
	}

	nw, err := NewWord(wj.Text, wj.PosTag, wj.Lemma, wj.Start, wj.End)
	if err != nil {
		return err
	}

	*w = nw
	return nil
}

// Token is a word of a Sentence in the extended output, carrying chunk and
// named entity tags.
type Token struct {
	// Index is the position of the token in the whole document, starting at 0.
	Index int `json:"index"`

	// The unmodified word, as found in the document
	Text string `json:"text"`

	PosTag string `json:"pos"`

	// ChunkTag is the type of the phrase chunk (NP, VP, PP) the token belongs
	// to, or its PosTag when outside any chunk.
	ChunkTag string `json:"chunk"`

	NerTag string `json:"ner,omitempty"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// rune offsets in the original document
	Start int `json:"start"`
	End   int `json:"end"`
}

// Sentence is a sentence of the extended output.
type Sentence struct {
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Content string  `json:"content"`
	Tokens  []Token `json:"tokens"`
	Size    int     `json:"size"`
}

// Message groups the sentences of one processed text.
type Message struct {
	Id        int64      `json:"id"`
	Sentences []Sentence `json:"sentences"`
}
