// Package annotate turns raw text into phrases of words with exact offsets.
//
// The linguistic analysis (sentence segmentation, POS tagging, lemmas, chunks
// and named entities) is delegated to a Source. The Pipeline aligns the
// word-forms reported by the Source with the original text, builds a Phrase
// per sentence and merges adjacent proper nouns.
package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/revelaction/wordspan/align"
	"github.com/revelaction/wordspan/phrase"
	sent "github.com/revelaction/wordspan/sentence"
)

// Record is an annotated word-form, as reported by a Source. It has no
// offsets.
type Record struct {
	Form  string `json:"text"`
	Tag   string `json:"tag"`
	Lemma string `json:"lemma"`

	// Chunk is the type of the phrase chunk containing the word (NP, VP,
	// PP), empty outside of chunks.
	Chunk string `json:"chunk,omitempty"`

	// Entity is the named entity tag of the word
	Entity string `json:"ner,omitempty"`
}

// Source is an annotation pipeline. It returns the words of each sentence of
// text, in reading order.
//
// Sources are usually expensive to build. They are built once and shared;
// a Source used by concurrent Pipeline calls must be safe for concurrent use.
type Source interface {
	Annotate(ctx context.Context, text string) ([][]Record, error)
}

// Fixed is a Source that returns always the same records. It is used to
// replay annotations produced by an external tool.
type Fixed [][]Record

func (f Fixed) Annotate(ctx context.Context, text string) ([][]Record, error) {
	return f, nil
}

// ReadFixed decodes a JSON array of sentences, each an array of records.
func ReadFixed(r io.Reader) (Fixed, error) {
	var f Fixed
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	return f, nil
}

// Forms returns the word-forms of the records.
func Forms(records []Record) []string {
	forms := make([]string, len(records))
	for i, r := range records {
		forms[i] = r.Form
	}
	return forms
}

// Pipeline runs a Source and aligns its output. It is safe for concurrent
// use if the Source is.
type Pipeline struct {
	src Source

	// last Message id
	counter atomic.Int64
}

func New(src Source) *Pipeline {
	return &Pipeline{src: src}
}

// Phrases returns the compressed phrases of the text, one per sentence.
func (p *Pipeline) Phrases(ctx context.Context, text string) ([]*phrase.Phrase, error) {
	aligned, err := p.Aligned(ctx, text)
	if err != nil {
		return nil, err
	}

	res := make([]*phrase.Phrase, len(aligned))
	for i, ph := range aligned {
		res[i] = ph.Compress()
	}

	return res, nil
}

// Aligned returns the sealed phrases of the text, without compression.
func (p *Pipeline) Aligned(ctx context.Context, text string) ([]*phrase.Phrase, error) {
	sentences, err := p.src.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotation error: %w", err)
	}

	a := align.New(text)
	res := make([]*phrase.Phrase, 0, len(sentences))

	for i, records := range sentences {
		ph, err := build(a, records)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}

		res = append(res, ph)
	}

	return res, nil
}

func build(a *align.Aligner, records []Record) (*phrase.Phrase, error) {
	al, err := a.Align(Forms(records))
	if err != nil {
		return nil, err
	}

	ph, err := phrase.New(al.Text, al.First, al.Last, len(records))
	if err != nil {
		return nil, err
	}

	for j, r := range records {
		span := al.Spans[j]
		if err := ph.SetWord(j, r.Form, r.Tag, r.Lemma, span.Start, span.End); err != nil {
			return nil, fmt.Errorf("word %d: %w", j, err)
		}
	}

	ph.Seal()
	return ph, nil
}

// Message returns the sentences of the text with chunk and named entity tags.
// Token indexes run across the whole text. Every call gets a new message id.
func (p *Pipeline) Message(ctx context.Context, text string) (sent.Message, error) {
	sentences, err := p.src.Annotate(ctx, text)
	if err != nil {
		return sent.Message{}, fmt.Errorf("annotation error: %w", err)
	}

	a := align.New(text)
	index := 0
	msg := sent.Message{Sentences: make([]sent.Sentence, 0, len(sentences))}

	for i, records := range sentences {
		al, err := a.Align(Forms(records))
		if err != nil {
			return sent.Message{}, fmt.Errorf("sentence %d: %w", i, err)
		}

		tokens := make([]sent.Token, len(records))
		for j, r := range records {
			span := al.Spans[j]
			if err := sent.Validate(r.Form, r.Tag, r.Lemma, span.Start, span.End); err != nil {
				return sent.Message{}, fmt.Errorf("sentence %d: word %d: %w", i, j, err)
			}

			tokens[j] = sent.Token{
				Index:    index,
				Text:     r.Form,
				PosTag:   r.Tag,
				ChunkTag: chunkTag(r),
				NerTag:   r.Entity,
				Lemma:    r.Lemma,
				Start:    span.Start,
				End:      span.End,
			}
			index++
		}

		msg.Sentences = append(msg.Sentences, sent.Sentence{
			Start:   al.First,
			End:     al.Last,
			Content: al.Text,
			Tokens:  tokens,
			Size:    len(tokens),
		})
	}

	msg.Id = p.counter.Add(1)
	return msg, nil
}

// words outside a chunk keep their POS tag as chunk tag
func chunkTag(r Record) string {
	if r.Chunk == "" {
		return r.Tag
	}
	return r.Chunk
}
