package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/phrase"
	sent "github.com/revelaction/wordspan/sentence"
	"github.com/revelaction/wordspan/topic"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Red       = "\033[1;31m"
	Yellow    = "\033[0;33m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"all", "part", "lemma", "aggr"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	PrefixDocFunc   func(*match.PhraseMatch) string
	PrefixTopicFunc func(*match.PhraseMatch) string

	// Format determines the format of the phrase
	//
	// all: print all phrase
	// part: print the sorrounding of the matches in the phrase, cut the rest.
	// lemma: print only the lemmas of the matched words
	// aggr: count the matched lemma sequences over all phrases
	Format string

	// Show only phrases with this amount of matches
	NumMatches int

	DocNames map[int]string
}

var _ ResultRenderer = (*Renderer)(nil)

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat, DocNames: map[int]string{}}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Render writes the sorted results in the current Format.
func (r *Renderer) Render(resultsSorted []*match.PhraseMatch) {

	// if aggr format, we collect the aggr lemmas here
	aggregatedLemmas := map[string]int{}

	for _, pm := range resultsSorted {
		if r.NumMatches > 0 && pm.NumExprs < r.NumMatches {
			break
		}

		words := pm.AllTokens()

		prefixDoc := r.buildPrefixDoc(pm)
		prefixTopic := r.buildPrefixTopic(pm)

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(pm.Phrase, words)
		case "lemma":
			text = r.lemma(words)
		case "aggr":
			r.aggregateLemma(words, aggregatedLemmas)
			continue
		default:
			text = r.phrase(pm.Phrase, words)
		}

		fmt.Fprintf(r.W, "%s%s%s\n", prefixDoc, prefixTopic, oneLine(text))
	}

	if r.Format == "aggr" {
		r.aggrLemmas(aggregatedLemmas)
	}
}

// Phrase writes the text of the phrase
func (r *Renderer) Phrase(p *phrase.Phrase, prefix string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, oneLine(p.Text()))
}

// PhraseString returns the text of the phrase with the matched words
// highlighted.
func (r *Renderer) PhraseString(p *phrase.Phrase, matches []sent.Word) string {
	return oneLine(r.phrase(p, matches))
}

// PhraseBlindedString returns the text of the phrase with the matched
// words substituted by a mask (###).
func (r *Renderer) PhraseBlindedString(p *phrase.Phrase, matches []sent.Word) string {
	runes := []rune(p.Text())
	for _, w := range matches {
		s, e := r.relative(p, w, len(runes))
		for i := s; i < e; i++ {
			runes[i] = '#'
		}
	}

	re := regexp.MustCompile(`#+`)
	return re.ReplaceAllLiteralString(oneLine(string(runes)), "###")
}

// Words writes the phrase followed by one line per word with its span, tag
// and lemma.
func (r *Renderer) Words(p *phrase.Phrase, id int) {
	prefix := ""
	if r.HasPrefix {
		prefix = fmt.Sprintf("[%4d %5d:%-5d] ", id, p.First(), p.Last())
	}
	r.Phrase(p, prefix)

	words, err := p.Words()
	if err != nil {
		fmt.Fprintf(r.W, "  %v\n", err)
		return
	}

	for _, w := range words {
		tag := w.PosTag()
		if r.HasColor {
			tag = Yellow256 + tag + Off
		}
		fmt.Fprintf(r.W, "  %5d %5d  %-6s %-20s %s\n", w.Start(), w.End(), tag, w.Text(), w.Lemma())
	}
}

// phrase renders the phrase text, coloring the matched words
func (r *Renderer) phrase(p *phrase.Phrase, matches []sent.Word) string {
	runes := []rune(p.Text())
	if !r.HasColor || len(matches) == 0 {
		return string(runes)
	}

	sorted := append([]sent.Word(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start() < sorted[j].Start()
	})

	var str strings.Builder
	last := 0
	for _, w := range sorted {
		s, e := r.relative(p, w, len(runes))
		if s < last {
			continue
		}

		str.WriteString(string(runes[last:s]))
		str.WriteString(Green256 + string(runes[s:e]) + Off)
		last = e
	}
	str.WriteString(string(runes[last:]))

	return str.String()
}

// relative returns the word span relative to the phrase text, clamped to it
func (r *Renderer) relative(p *phrase.Phrase, w sent.Word, size int) (int, int) {
	s := min(max(w.Start()-p.First(), 0), size)
	e := min(max(w.End()-p.First(), s), size)
	return s, e
}

func (r *Renderer) syntagma(p *phrase.Phrase, matches []sent.Word) string {
	words, err := p.Words()

	// if not matches, we print the whole phrase
	if len(matches) == 0 || err != nil || len(words) == 0 {
		return r.phrase(p, matches)
	}

	// positions of the first and last matched words
	firstMatch, lastMatch := len(words), -1
	for i, w := range words {
		for _, mt := range matches {
			if mt.Span() == w.Span() {
				firstMatch = min(firstMatch, i)
				lastMatch = max(lastMatch, i)
				break
			}
		}
	}

	if lastMatch < 0 {
		return r.phrase(p, matches)
	}

	firstIdx := max(firstMatch-partialOffset, 0)
	lastIdx := min(lastMatch+partialOffset, len(words)-1)

	runes := []rune(r.phrase(p, nil))
	s, _ := r.relative(p, words[firstIdx], len(runes))
	_, e := r.relative(p, words[lastIdx], len(runes))

	if !r.HasColor {
		return string(runes[s:e])
	}

	// color the cut
	cut, err := phrase.New(string(runes[s:e]), p.First()+s, p.First()+e, 0)
	if err != nil {
		return string(runes[s:e])
	}
	return r.phrase(cut, matches)
}

// Topic renders topic expressions in a mode compatible with the topic parser,
// one expression per line:
//
//	NNP* 2 be
//	VB*:see|look
func (r *Renderer) Topic(exprs []topic.TopicExpr) {
	for _, expr := range exprs {
		fmt.Fprintf(r.W, "%s\n", expr.String())
	}
}

func (r *Renderer) LemmaString(matches []sent.Word) string {
	return r.lemma(matches)
}

// lemma renders only the matched words (the lemma field)
func (r *Renderer) lemma(matches []sent.Word) string {
	matchedWords := []string{}
	for _, w := range matches {
		matchedWords = append(matchedWords, w.Lemma())
	}

	return strings.Join(matchedWords, " ")
}

func (r *Renderer) aggregateLemma(matches []sent.Word, aggrLemmas map[string]int) {
	matchedWords := []sent.Word{}

OUTER:
	for _, w := range matches {
		// avoid duplicates word (same span in phrase)
		for _, m := range matchedWords {
			if m.Span() == w.Span() {
				continue OUTER
			}
		}

		matchedWords = append(matchedWords, w)
	}

	aggrLemmas[r.lemma(matchedWords)]++
}

func (r *Renderer) buildPrefixDoc(pm *match.PhraseMatch) string {

	if !r.HasPrefix {
		return PrefixFuncEmpty(pm)
	}

	if r.PrefixDocFunc != nil {
		return r.PrefixDocFunc(pm)
	}

	// Default
	return fmt.Sprintf("[%s %2d %5d:%2d] ✍  ", r.title(pm.DocId), pm.DocId, pm.PhraseId, pm.NumExprs)
}

func PrefixFuncEmpty(pm *match.PhraseMatch) string {
	return ""
}

func PrefixFuncIconHand(pm *match.PhraseMatch) string {
	return fmt.Sprintf("%2d ✍  ", pm.PhraseId)
}

func (r *Renderer) buildPrefixTopic(pm *match.PhraseMatch) string {

	if !r.HasPrefix || pm.TopicName == "" {
		return PrefixFuncEmpty(pm)
	}

	if r.PrefixTopicFunc != nil {
		return r.PrefixTopicFunc(pm)
	}

	topicPrefix := "🏷  " + pm.TopicName
	if r.HasColor {
		topicPrefix = "🏷  " + Yellow256 + pm.TopicName + Off
	}
	return fmt.Sprintf("[%-30s] ✍  ", topicPrefix)
}

func (r *Renderer) title(docId int) string {
	runes := []rune(r.DocNames[docId])
	var part string
	if len(runes) <= 20 {
		part = fmt.Sprintf("%-20s", string(runes))
	} else {
		part = string(runes[:20])
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}

func (r *Renderer) aggrLemmas(agls map[string]int) {
	type aggr struct {
		NumPhrases int
		LemmaStr   string
	}

	// flatten map to use sortSlice
	sl := []aggr{}
	for lemmaStr, n := range agls {
		sl = append(sl, aggr{n, lemmaStr})
	}

	sort.SliceStable(sl, func(i, j int) bool {

		// first by num phrases
		if sl[i].NumPhrases != sl[j].NumPhrases {
			return sl[i].NumPhrases > sl[j].NumPhrases
		}

		// len of lemmas string
		if len(sl[i].LemmaStr) != len(sl[j].LemmaStr) {
			return len(sl[i].LemmaStr) < len(sl[j].LemmaStr)
		}

		return sl[i].LemmaStr < sl[j].LemmaStr
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.NumPhrases)
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, s.LemmaStr)
	}
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
