package match

import (
	"strings"

	sent "github.com/revelaction/wordspan/sentence"

	"golang.org/x/text/cases"
)

// Wildcard at the end of a POS tag filter turns it into a prefix filter.
const Wildcard = "*"

// Pattern is a compiled token pattern: a mandatory POS tag filter and an
// optional list of admissible lemmas.
type Pattern struct {
	tag    string
	prefix bool

	// folded lemmas
	lemmas []string

	// original input, for String
	raw    string
	rawLem []string
}

// NewPattern compiles a pattern.
//
// The posTag is either a specific POS tag (like "JJS", "," or "VBD") or a
// family of tags (like "NN*", which stands for "NN", "NNS", "NNP" and "NNPS").
// In the former case the tag of the word must be equal to the filter; in the
// latter it must start with the filter without the ending asterisk.
//
// If lemmas are given, the lemma of the word must also be equal, case
// insensitive, to one of them.
func NewPattern(posTag string, lemmas ...string) (Pattern, error) {
	tag := strings.TrimSpace(posTag)
	if tag == "" {
		return Pattern{}, &sent.ValidationError{Field: "posTag", Value: posTag, Reason: "is empty"}
	}

	p := Pattern{raw: tag, rawLem: lemmas}

	if strings.HasSuffix(tag, Wildcard) {
		p.prefix = true
		tag = strings.TrimSuffix(tag, Wildcard)
	}
	p.tag = tag

	if len(lemmas) > 0 {
		folder := cases.Fold()
		p.lemmas = make([]string, len(lemmas))
		for i, l := range lemmas {
			p.lemmas[i] = folder.String(l)
		}
	}

	return p, nil
}

// Match reports whether the word satisfies the pattern.
func (p Pattern) Match(w sent.Word) bool {
	if !p.matchesPosTag(w.PosTag()) {
		return false
	}

	if len(p.lemmas) == 0 {
		return true
	}

	return p.hasLemma(w.Lemma())
}

func (p Pattern) matchesPosTag(ref string) bool {
	if p.prefix {
		return strings.HasPrefix(ref, p.tag)
	}

	return ref == p.tag
}

func (p Pattern) hasLemma(ref string) bool {
	ref = cases.Fold().String(ref)
	for _, l := range p.lemmas {
		if l == ref {
			return true
		}
	}

	return false
}

func (p Pattern) String() string {
	if len(p.rawLem) == 0 {
		return p.raw
	}

	return p.raw + ":" + strings.Join(p.rawLem, "|")
}

// Match checks whether the word matches the pattern given by posTag and
// lemmas. A call to Match(w, "CC", "and", "or"), for instance, verifies that
// the word is either an "and" or an "or" connective. Match(w, "JJ*") verifies
// that the word is a plain, comparative or superlative adjective.
func Match(w sent.Word, posTag string, lemmas ...string) (bool, error) {
	p, err := NewPattern(posTag, lemmas...)
	if err != nil {
		return false, err
	}

	return p.Match(w), nil
}
