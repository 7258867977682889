// Package prose is an English annotate.Source built on the jdkato/prose
// tokenizers, perceptron tagger and named entity chunker, with lemmas from
// the golem English dictionary.
package prose

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/chunk"
	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"

	"github.com/revelaction/wordspan/annotate"
	"github.com/revelaction/wordspan/phrase"
)

const (
	EntityTag  = "ENTITY"
	OutsideTag = "O"
)

// Source annotates English text. Building it loads the tagger model and the
// lemma dictionary, so it is built once and shared. It is safe for
// concurrent use.
type Source struct {
	mu sync.Mutex

	sentences *tokenize.PunktSentenceTokenizer
	words     *tokenize.TreebankWordTokenizer
	tagger    *tag.PerceptronTagger
	lemmas    *golem.Lemmatizer
}

func New() (*Source, error) {
	lemmas, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load the lemma dictionary: %w", err)
	}

	return &Source{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
		tagger:    tag.NewPerceptronTagger(),
		lemmas:    lemmas,
	}, nil
}

// Annotate splits the text in sentences and annotates each word.
//
// The treebank tokenizer rewrites double quotes as `` and ''. Those forms
// do not occur in the text and fail to align.
func (s *Source) Annotate(ctx context.Context, text string) ([][]annotate.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res [][]annotate.Record
	for _, sentence := range s.sentences.Tokenize(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		words := s.words.Tokenize(sentence)
		if len(words) == 0 {
			continue
		}

		res = append(res, s.records(s.tagger.Tag(words)))
	}

	return res, nil
}

func (s *Source) records(tagged []tag.Token) []annotate.Record {
	tags := make([]string, len(tagged))
	for i, tk := range tagged {
		tags[i] = tk.Tag
	}

	chunks := Chunks(tags)
	entities := entities(tagged)

	records := make([]annotate.Record, len(tagged))
	for i, tk := range tagged {
		records[i] = annotate.Record{
			Form:   tk.Text,
			Tag:    tk.Tag,
			Lemma:  s.Lemma(tk.Text, tk.Tag),
			Chunk:  chunks[i],
			Entity: entities[i],
		}
	}

	return records
}

func entities(tagged []tag.Token) []string {
	res := make([]string, len(tagged))
	for i := range res {
		res[i] = OutsideTag
	}

	for _, loc := range chunk.Locate(tagged, chunk.TreebankNamedEntities) {
		for i := loc[0]; i < loc[1] && i < len(res); i++ {
			res[i] = EntityTag
		}
	}

	return res
}

// Lemma returns the dictionary form of the word-form. Proper nouns keep
// their form and irregular forms are looked up. Inflected verbs and plural
// nouns are looked up in the dictionary, and reduced by suffix rules when
// the dictionary does not know them. Other forms are lowercased.
func (s *Source) Lemma(form, posTag string) string {
	if phrase.IsProperNoun(posTag) {
		return form
	}

	lower := strings.ToLower(form)
	if posTag == "POS" {
		return lower
	}

	if l, ok := irregular[lower]; ok {
		return l
	}

	if !inflected(posTag) {
		return lower
	}

	if s.lemmas.InDict(lower) {
		if l := s.lemmas.Lemma(lower); l != "" {
			return l
		}
	}

	return suffixLemma(lower, posTag)
}

func inflected(posTag string) bool {
	switch posTag {
	case "VBD", "VBG", "VBN", "VBP", "VBZ", "NNS":
		return true
	}
	return false
}

// suffixLemma removes the inflection suffix of a regular form.
func suffixLemma(w, posTag string) string {
	switch posTag {
	case "NNS", "VBZ":
		switch {
		case len(w) > 4 && strings.HasSuffix(w, "ies"):
			return w[:len(w)-3] + "y"
		case hasAnySuffix(w, "sses", "xes", "ches", "shes", "zes", "oes"):
			return w[:len(w)-2]
		case strings.HasSuffix(w, "ss") || strings.HasSuffix(w, "us"):
			return w
		case len(w) > 2 && strings.HasSuffix(w, "s"):
			return w[:len(w)-1]
		}
	case "VBD", "VBN":
		switch {
		case len(w) > 4 && strings.HasSuffix(w, "ied"):
			return w[:len(w)-3] + "y"
		case len(w) > 3 && strings.HasSuffix(w, "ed"):
			return restore(w[:len(w)-2])
		}
	case "VBG":
		if len(w) > 5 && strings.HasSuffix(w, "ing") {
			return restore(w[:len(w)-3])
		}
	}

	return w
}

// restore undoes the spelling changes of -ed and -ing: a doubled final
// consonant is dropped and a silent e is added back after the endings that
// usually carry one.
func restore(stem string) string {
	n := len(stem)
	if n > 2 && stem[n-1] == stem[n-2] && !strings.ContainsRune("aeiouslz", rune(stem[n-1])) {
		return stem[:n-1]
	}

	if hasAnySuffix(stem, "at", "iz", "bl", "dg", "rs", "ur", "uc", "iv", "av", "ov") {
		return stem + "e"
	}

	return stem
}

func hasAnySuffix(w string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}

var irregular = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be",
	"been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
	"has": "have", "had": "have", "having": "have", "'ve": "have",
	"does": "do", "did": "do", "done": "do",
	"went": "go", "gone": "go", "goes": "go",
	"saw": "see", "seen": "see",
	"said": "say", "says": "say",
	"made": "make", "took": "take", "taken": "take",
	"came": "come", "got": "get", "gotten": "get",
	"knew": "know", "known": "know", "thought": "think",
	"gave": "give", "given": "give", "found": "find",
	"told": "tell", "became": "become", "left": "leave",
	"felt": "feel", "brought": "bring", "began": "begin", "begun": "begin",
	"kept": "keep", "held": "hold", "wrote": "write", "written": "write",
	"stood": "stand", "heard": "hear", "meant": "mean", "met": "meet",
	"ran": "run", "paid": "pay", "sat": "sit", "spoke": "speak",
	"spoken": "speak", "led": "lead", "grew": "grow", "grown": "grow",
	"lost": "lose", "fell": "fall", "fallen": "fall", "sent": "send",
	"built": "build", "understood": "understand", "drew": "draw",
	"drawn": "draw", "broke": "break", "broken": "break", "spent": "spend",
	"rose": "rise", "risen": "rise", "drove": "drive", "driven": "drive",
	"bought": "buy", "wore": "wear", "worn": "wear", "chose": "choose",
	"chosen": "choose", "sought": "seek", "threw": "throw", "thrown": "throw",
	"caught": "catch", "dealt": "deal", "won": "win", "ate": "eat",
	"eaten": "eat", "ca": "can", "wo": "will", "n't": "not", "'ll": "will",
	"'d": "would",
	"men": "man", "women": "woman", "children": "child", "people": "person",
	"feet": "foot", "teeth": "tooth", "mice": "mouse", "geese": "goose",
}
