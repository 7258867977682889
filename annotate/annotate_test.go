package annotate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/revelaction/wordspan/align"
	sent "github.com/revelaction/wordspan/sentence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baselRecords = Fixed{{
	{Form: "Basel", Tag: "NNP", Lemma: "Basel", Chunk: "NP", Entity: "ENTITY"},
	{Form: "Accords", Tag: "NNPS", Lemma: "Accords", Chunk: "NP", Entity: "ENTITY"},
	{Form: "are", Tag: "VBP", Lemma: "be", Chunk: "VP"},
	{Form: "important", Tag: "JJ", Lemma: "important"},
	{Form: ".", Tag: ".", Lemma: "."},
}}

func TestPhrasesScenarioBasel(t *testing.T) {
	p := New(baselRecords)

	aligned, err := p.Aligned(context.Background(), "Basel Accords are important.")
	require.NoError(t, err)
	require.Len(t, aligned, 1)
	assert.Equal(t, 5, aligned[0].Size())
	assert.Equal(t, []int{0, 6, 14, 18, 27}, aligned[0].Starts())
	assert.Equal(t, []int{5, 13, 17, 27, 28}, aligned[0].Ends())
	assert.True(t, aligned[0].Sealed())

	phrases, err := p.Phrases(context.Background(), "Basel Accords are important.")
	require.NoError(t, err)
	require.Len(t, phrases, 1)

	ph := phrases[0]
	require.Equal(t, 4, ph.Size())
	w, err := ph.Word(0)
	require.NoError(t, err)
	assert.Equal(t, "Basel Accords", w.Text())
	assert.Equal(t, "NNPS", w.PosTag())
	assert.Equal(t, "Basel Accords", w.Lemma())
	assert.Equal(t, 0, w.Start())
	assert.Equal(t, 13, w.End())
	assert.Equal(t, "Basel Accords are important.", ph.Text())
}

func TestPhrasesSeveralSentences(t *testing.T) {
	src := Fixed{
		{{Form: "the", Tag: "DT", Lemma: "the"}, {Form: "cat", Tag: "NN", Lemma: "cat"}, {Form: ".", Tag: ".", Lemma: "."}},
		{},
		{{Form: "the", Tag: "DT", Lemma: "the"}, {Form: "dog", Tag: "NN", Lemma: "dog"}, {Form: ".", Tag: ".", Lemma: "."}},
	}
	doc := "the cat. the dog."

	phrases, err := New(src).Phrases(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, phrases, 3)

	assert.Equal(t, "the cat.", phrases[0].Text())
	assert.Equal(t, 0, phrases[1].Size())
	assert.Equal(t, 8, phrases[1].First())
	assert.Equal(t, 8, phrases[1].Last())
	assert.Equal(t, "the dog.", phrases[2].Text())
	assert.Equal(t, []int{9, 13, 16}, phrases[2].Starts())
}

func TestPhrasesMismatch(t *testing.T) {
	src := Fixed{
		{{Form: "He", Tag: "PRP", Lemma: "he"}, {Form: "ca", Tag: "MD", Lemma: "can"}, {Form: "n't", Tag: "RB", Lemma: "not"}},
		{{Form: "``", Tag: "``", Lemma: "``"}, {Form: "Go", Tag: "VB", Lemma: "go"}},
	}

	phrases, err := New(src).Phrases(context.Background(), `He can't. "Go"`)
	require.Error(t, err)
	assert.Nil(t, phrases)

	// "ca" and "n't" align inside "can't"; the treebank quote does not
	var me *align.MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "``", me.Form)
	assert.Equal(t, 8, me.Cursor)
	assert.Equal(t, 0, me.Word)
	assert.True(t, strings.HasPrefix(err.Error(), "sentence 1: "))
}

func TestPhrasesMismatchFirstSentence(t *testing.T) {
	src := Fixed{
		{{Form: "He", Tag: "PRP", Lemma: "he"}, {Form: "cannot", Tag: "MD", Lemma: "can"}, {Form: ".", Tag: ".", Lemma: "."}},
	}

	_, err := New(src).Phrases(context.Background(), "He can't.")
	require.Error(t, err)

	var me *align.MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "cannot", me.Form)
	assert.Equal(t, 2, me.Cursor)
	assert.Equal(t, 1, me.Word)
	assert.True(t, strings.HasPrefix(err.Error(), "sentence 0: "))
}

func TestPhrasesValidation(t *testing.T) {
	src := Fixed{{{Form: "cat", Tag: "NN", Lemma: " "}}}

	_, err := New(src).Phrases(context.Background(), "cat")
	assert.ErrorIs(t, err, sent.ErrValidation)
}

type failing struct{}

func (failing) Annotate(ctx context.Context, text string) ([][]Record, error) {
	return nil, errors.New("model not loaded")
}

func TestSourceError(t *testing.T) {
	_, err := New(failing{}).Phrases(context.Background(), "x")
	assert.EqualError(t, err, "annotation error: model not loaded")

	_, err = New(failing{}).Message(context.Background(), "x")
	assert.Error(t, err)
}

func TestMessage(t *testing.T) {
	src := Fixed{
		baselRecords[0],
		{{Form: "They", Tag: "PRP", Lemma: "they"}, {Form: "are", Tag: "VBP", Lemma: "be"}, {Form: ".", Tag: ".", Lemma: "."}},
	}
	doc := "Basel Accords are important. They are."
	p := New(src)

	msg, err := p.Message(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.Id)
	require.Len(t, msg.Sentences, 2)

	first := msg.Sentences[0]
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 28, first.End)
	assert.Equal(t, "Basel Accords are important.", first.Content)
	assert.Equal(t, 5, first.Size)

	// no proper noun compression in messages
	assert.Equal(t, "Basel", first.Tokens[0].Text)
	assert.Equal(t, "NP", first.Tokens[0].ChunkTag)
	assert.Equal(t, "ENTITY", first.Tokens[0].NerTag)
	// chunk tag falls back to the POS tag
	assert.Equal(t, "JJ", first.Tokens[3].ChunkTag)

	second := msg.Sentences[1]
	assert.Equal(t, 29, second.Start)
	assert.Equal(t, 5, second.Tokens[0].Index)
	assert.Equal(t, 7, second.Tokens[2].Index)
	assert.Equal(t, "They are.", second.Content)

	again, err := p.Message(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.Id)
}

func TestMessageConcurrentIds(t *testing.T) {
	p := New(baselRecords)

	var wg sync.WaitGroup
	ids := make(chan int64, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := p.Message(context.Background(), "Basel Accords are important.")
			if err == nil {
				ids <- msg.Id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}

func TestReadFixed(t *testing.T) {
	in := `[[{"text":"Hi","tag":"UH","lemma":"hi"},{"text":"!","tag":".","lemma":"!","chunk":"O"}]]`
	f, err := ReadFixed(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, f, 1)
	assert.Equal(t, Record{Form: "!", Tag: ".", Lemma: "!", Chunk: "O"}, f[0][1])

	_, err = ReadFixed(strings.NewReader(`{`))
	assert.Error(t, err)
}
