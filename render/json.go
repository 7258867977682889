package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/phrase"
	sent "github.com/revelaction/wordspan/sentence"
)

// ResultRenderer writes sorted phrase matches.
type ResultRenderer interface {
	Render(results []*match.PhraseMatch)
}

// JSONRenderer writes PhraseMatch results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes phrase match results as a JSON array.
func (r *JSONRenderer) Render(results []*match.PhraseMatch) {
	if results == nil {
		results = []*match.PhraseMatch{}
	}
	json.NewEncoder(r.W).Encode(results)
}

// compile-time interface check
var _ ResultRenderer = (*JSONRenderer)(nil)

// PhraseJSON is the JSON form of a phrase.
type PhraseJSON struct {
	Id    int         `json:"id"`
	Text  string      `json:"text"`
	First int         `json:"first"`
	Last  int         `json:"last"`
	Words []sent.Word `json:"words"`
}

// Phrases serializes the phrases as a JSON array. Phrases with unset words
// are an error.
func (r *JSONRenderer) Phrases(phrases []*phrase.Phrase) error {
	out := make([]PhraseJSON, 0, len(phrases))
	for i, p := range phrases {
		words, err := p.Words()
		if err != nil {
			return err
		}

		out = append(out, PhraseJSON{
			Id:    i,
			Text:  p.Text(),
			First: p.First(),
			Last:  p.Last(),
			Words: words,
		})
	}

	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Message serializes the message with indentation.
func (r *JSONRenderer) Message(msg sent.Message) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(msg)
}
