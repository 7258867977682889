package stat

import (
	"sort"
	"strings"

	"github.com/revelaction/wordspan/phrase"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int
	NumPhrases            int
	NumWords              int
	WordsPerPhraseMean    int
	WordsPerPhraseDis     map[int]int
	TagDis                map[string]int
	NumProperNouns        int
	NumCompressedWords    int
	NumCompoundProperNoun int
}

// TagCount is a POS tag and its number of words
type TagCount struct {
	Tag   string
	Count int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		WordsPerPhraseDis: map[int]int{},
		TagDis:            map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the phrases of a document, before and after proper noun
// compression. raw and compressed have the same length.
func (h *Handler) Aggregate(raw, compressed []*phrase.Phrase) {
	h.stats.NumDocs++
	h.stats.NumPhrases += len(raw)

	for i, p := range raw {
		h.stats.NumWords += p.Size()
		h.stats.WordsPerPhraseDis[p.Size()]++

		for _, tag := range p.PosTags() {
			h.stats.TagDis[tag]++
			if phrase.IsProperNoun(tag) {
				h.stats.NumProperNouns++
			}
		}

		if i >= len(compressed) {
			continue
		}

		h.stats.NumCompressedWords += compressed[i].Size()
		tags := compressed[i].PosTags()
		for j, text := range compressed[i].Tokens() {
			if phrase.IsProperNoun(tags[j]) && strings.Contains(text, " ") {
				h.stats.NumCompoundProperNoun++
			}
		}
	}

	if h.stats.NumPhrases > 0 {
		h.stats.WordsPerPhraseMean = h.stats.NumWords / h.stats.NumPhrases
	}
}

// Tags returns the POS tag distribution, most frequent first.
func (s Stats) Tags() []TagCount {
	tags := make([]TagCount, 0, len(s.TagDis))
	for tag, n := range s.TagDis {
		tags = append(tags, TagCount{tag, n})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	return tags
}
