package phrase

import (
	"strings"

	sent "github.com/revelaction/wordspan/sentence"
)

// ProperNounPrefix is the common root of the proper noun POS tags (NNP, NNPS).
const ProperNounPrefix = "NNP"

// Phrase holds a fixed number of words of a sentence, in reading order.
//
// A Phrase is created empty with New and filled position by position with
// SetWord. Once Seal is called it can not be modified anymore.
type Phrase struct {
	// the content of the whole sentence to which this phrase refers
	text string

	// document offsets of the sentence
	first int
	last  int

	words  []sent.Word
	sealed bool
}

// New returns an empty Phrase of the given size.
func New(text string, first, last, size int) (*Phrase, error) {
	if size < 0 {
		return nil, &sent.ValidationError{Field: "size", Value: size, Reason: "must be greater or equal to zero"}
	}

	if first < 0 {
		return nil, &sent.ValidationError{Field: "first", Value: first, Reason: "must be greater or equal to zero"}
	}

	if last < first {
		return nil, &sent.ValidationError{Field: "last", Value: last, Reason: "must be greater or equal to first"}
	}

	return &Phrase{
		text:  text,
		first: first,
		last:  last,
		words: make([]sent.Word, size),
	}, nil
}

// SetWord sets the pos-th word of the phrase. Setting the same position again
// overwrites it.
func (p *Phrase) SetWord(pos int, text, posTag, lemma string, start, end int) error {
	if pos < 0 || pos >= len(p.words) {
		return &sent.BoundsError{Index: pos, Size: len(p.words)}
	}

	if p.sealed {
		return &sent.ValidationError{Field: "phrase", Value: pos, Reason: "is sealed"}
	}

	w, err := sent.NewWord(text, posTag, lemma, start, end)
	if err != nil {
		return err
	}

	p.words[pos] = w
	return nil
}

// Seal makes the phrase read-only.
func (p *Phrase) Seal() {
	p.sealed = true
}

func (p *Phrase) Sealed() bool {
	return p.sealed
}

// PatternTokens returns the words with position in [start, end). The Words
// are copies: they are not affected by later SetWord calls.
func (p *Phrase) PatternTokens(start, end int) ([]sent.Word, error) {
	size := len(p.words)
	if start < 0 || start > size {
		return nil, &sent.ValidationError{Field: "start", Value: start, Reason: "must be in [0,size]"}
	}

	if end < start || end > size {
		return nil, &sent.ValidationError{Field: "end", Value: end, Reason: "must be in [start,size]"}
	}

	words := make([]sent.Word, 0, end-start)
	for i := start; i < end; i++ {
		if p.words[i].IsZero() {
			return nil, &sent.ValidationError{Field: "word", Value: i, Reason: "is not set"}
		}

		words = append(words, p.words[i])
	}

	return words, nil
}

// Words returns all the words of the phrase.
func (p *Phrase) Words() ([]sent.Word, error) {
	return p.PatternTokens(0, len(p.words))
}

// Word returns the pos-th word.
func (p *Phrase) Word(pos int) (sent.Word, error) {
	if pos < 0 || pos >= len(p.words) {
		return sent.Word{}, &sent.BoundsError{Index: pos, Size: len(p.words)}
	}

	return p.words[pos], nil
}

// Text returns the content of the sentence.
func (p *Phrase) Text() string {
	return p.text
}

func (p *Phrase) First() int {
	return p.first
}

func (p *Phrase) Last() int {
	return p.last
}

func (p *Phrase) Size() int {
	return len(p.words)
}

func (p *Phrase) Tokens() []string {
	return collect(p.words, sent.Word.Text)
}

func (p *Phrase) PosTags() []string {
	return collect(p.words, sent.Word.PosTag)
}

func (p *Phrase) Lemmas() []string {
	return collect(p.words, sent.Word.Lemma)
}

func (p *Phrase) Starts() []int {
	return collect(p.words, sent.Word.Start)
}

func (p *Phrase) Ends() []int {
	return collect(p.words, sent.Word.End)
}

func (p *Phrase) String() string {
	return strings.Join(p.Tokens(), " ")
}

func collect[T any](words []sent.Word, field func(sent.Word) T) []T {
	res := make([]T, len(words))
	for i, w := range words {
		res[i] = field(w)
	}

	return res
}
