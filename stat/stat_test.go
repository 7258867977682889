package stat

import (
	"context"
	"testing"

	"github.com/revelaction/wordspan/annotate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(form, tag string) annotate.Record {
	return annotate.Record{Form: form, Tag: tag, Lemma: form}
}

func TestAggregate(t *testing.T) {
	src := annotate.Fixed{
		{r("Basel", "NNP"), r("Accords", "NNPS"), r("are", "VBP"), r("important", "JJ"), r(".", ".")},
		{r("Anna", "NNP"), r("sleeps", "VBZ"), r(".", ".")},
	}
	text := "Basel Accords are important. Anna sleeps."

	p := annotate.New(src)
	raw, err := p.Aligned(context.Background(), text)
	require.NoError(t, err)
	compressed, err := p.Phrases(context.Background(), text)
	require.NoError(t, err)

	h := NewHandler()
	h.Aggregate(raw, compressed)
	s := h.Get()

	assert.Equal(t, 1, s.NumDocs)
	assert.Equal(t, 2, s.NumPhrases)
	assert.Equal(t, 8, s.NumWords)
	assert.Equal(t, 4, s.WordsPerPhraseMean)
	assert.Equal(t, map[int]int{5: 1, 3: 1}, s.WordsPerPhraseDis)
	assert.Equal(t, 3, s.NumProperNouns)
	assert.Equal(t, 7, s.NumCompressedWords)
	assert.Equal(t, 1, s.NumCompoundProperNoun)

	tags := s.Tags()
	assert.Equal(t, TagCount{".", 2}, tags[0])
	assert.Equal(t, TagCount{"NNP", 2}, tags[1])

	h.Aggregate(nil, nil)
	assert.Equal(t, 2, h.Get().NumDocs)
	assert.Equal(t, 4, h.Get().WordsPerPhraseMean)
}
