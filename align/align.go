// Package align locates annotated word-forms inside the text they were
// produced from.
//
// An annotation pipeline reports the words of each sentence in reading order
// but not where they are. The Aligner walks the document with a cursor that
// only moves forward: each word-form is searched from the cursor, and the
// cursor is moved to the end of the match. Spans are therefore monotonic
// across a whole document, and repeated words ("the ... the") resolve to
// distinct, increasing spans.
//
// Offsets are rune (code point) offsets into the document.
package align

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sent "github.com/revelaction/wordspan/sentence"
)

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("alignment mismatch")

// MismatchError reports a word-form that does not occur in the document at or
// after the cursor. It usually means the annotation pipeline normalized the
// text (quotes, contractions, unicode).
type MismatchError struct {
	// Form is the word-form that was searched
	Form string

	// Cursor is the rune offset the search started from
	Cursor int

	// Word is the index of the form in its sentence
	Word int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("word %d %q not found in document at or after offset %d", e.Word, e.Form, e.Cursor)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Alignment is the result of aligning one sentence.
type Alignment struct {
	// Spans contains one span per word-form, in order
	Spans []sent.Span

	// First is the start of the first word, Last the end of the last one.
	// For a sentence without words both are the cursor position.
	First int
	Last  int

	// Text is document[First:Last], verbatim.
	Text string
}

// Aligner owns the cursor of one alignment pass over a document. It is not
// safe for concurrent use.
type Aligner struct {
	doc string

	// byte and rune positions of the cursor
	pos  int
	rpos int
}

func New(document string) *Aligner {
	return &Aligner{doc: document}
}

// Cursor returns the rune offset of the cursor.
func (a *Aligner) Cursor() int {
	return a.rpos
}

// Align aligns the word-forms of the next sentence. On error the cursor is
// not moved and no partial alignment is returned.
func (a *Aligner) Align(forms []string) (Alignment, error) {
	pos, rpos := a.pos, a.rpos
	firstByte, lastByte := pos, pos

	al := Alignment{
		Spans: make([]sent.Span, 0, len(forms)),
		First: rpos,
		Last:  rpos,
	}

	for i, form := range forms {
		if strings.TrimSpace(form) == "" {
			return Alignment{}, &sent.ValidationError{Field: "form", Value: fmt.Sprintf("%q (word %d)", form, i), Reason: "is empty"}
		}

		idx := strings.Index(a.doc[pos:], form)
		if idx < 0 {
			return Alignment{}, &MismatchError{Form: form, Cursor: rpos, Word: i}
		}

		start := rpos + utf8.RuneCountInString(a.doc[pos:pos+idx])
		end := start + utf8.RuneCountInString(form)

		if i == 0 {
			firstByte = pos + idx
			al.First = start
		}

		pos += idx + len(form)
		rpos = end
		lastByte = pos

		al.Spans = append(al.Spans, sent.Span{Start: start, End: end})
	}

	if len(forms) > 0 {
		al.Last = rpos
		al.Text = a.doc[firstByte:lastByte]
	}

	a.pos, a.rpos = pos, rpos
	return al, nil
}

// Document aligns all the sentences of a document in one pass.
func Document(document string, sentences [][]string) ([]Alignment, error) {
	a := New(document)
	res := make([]Alignment, 0, len(sentences))
	for i, forms := range sentences {
		al, err := a.Align(forms)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}

		res = append(res, al)
	}

	return res, nil
}
