package phrase

import (
	"strings"

	sent "github.com/revelaction/wordspan/sentence"
)

// Compress merges the consecutive proper nouns of the phrase. For instance,
// the sequence ['Basel'_NNP, 'Accords'_NNPS] becomes ['Basel Accords'_NNPS].
func (p *Phrase) Compress() *Phrase {
	return Compress(p)
}

// Compress returns a new sealed Phrase in which every maximal run of adjacent
// proper nouns is a single word:
//
//   - texts and lemmas of the run are joined with a space
//   - the POS tag is the tag of the last word of the run
//   - the span goes from the start of the first word to the end of the last
//
// A run whose last word ends before its first word starts was set out of
// order and is copied unchanged. Other words are copied unchanged. p is never
// modified.
func Compress(p *Phrase) *Phrase {
	words := make([]sent.Word, 0, len(p.words))

	r := 0
	for r < len(p.words) {
		w := p.words[r]
		r++

		if !IsProperNoun(w.PosTag()) {
			words = append(words, w)
			continue
		}

		runStart := r - 1
		for r < len(p.words) && IsProperNoun(p.words[r].PosTag()) {
			r++
		}

		if r-runStart == 1 {
			words = append(words, w)
			continue
		}

		merged, err := merge(p.words[runStart:r])
		if err != nil {
			words = append(words, p.words[runStart:r]...)
			continue
		}

		words = append(words, merged)
	}

	return &Phrase{
		text:   p.text,
		first:  p.first,
		last:   p.last,
		words:  words,
		sealed: true,
	}
}

// IsProperNoun reports whether posTag is a singular or plural proper noun.
func IsProperNoun(posTag string) bool {
	return strings.HasPrefix(posTag, ProperNounPrefix)
}

// merge joins a run of at least two valid words.
func merge(run []sent.Word) (sent.Word, error) {
	texts := make([]string, len(run))
	lemmas := make([]string, len(run))
	for i, w := range run {
		texts[i] = w.Text()
		lemmas[i] = w.Lemma()
	}

	last := run[len(run)-1]
	return sent.NewWord(strings.Join(texts, " "), last.PosTag(), strings.Join(lemmas, " "), run[0].Start(), last.End())
}
