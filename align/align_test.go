package align

import (
	"errors"
	"strings"
	"testing"

	sent "github.com/revelaction/wordspan/sentence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignScenarioBasel(t *testing.T) {
	doc := "Basel Accords are important."
	al, err := New(doc).Align([]string{"Basel", "Accords", "are", "important", "."})
	require.NoError(t, err)

	expected := []sent.Span{{Start: 0, End: 5}, {Start: 6, End: 13}, {Start: 14, End: 17}, {Start: 18, End: 27}, {Start: 27, End: 28}}
	assert.Equal(t, expected, al.Spans)
	assert.Equal(t, 0, al.First)
	assert.Equal(t, 28, al.Last)
	assert.Equal(t, doc, al.Text)
}

func TestAlignDuplicateForms(t *testing.T) {
	al, err := New("the cat and the dog").Align([]string{"the", "cat", "and", "the", "dog"})
	require.NoError(t, err)

	assert.Equal(t, sent.Span{Start: 0, End: 3}, al.Spans[0])
	assert.Equal(t, sent.Span{Start: 12, End: 15}, al.Spans[3])
}

func TestAlignMultipleSentences(t *testing.T) {
	doc := "Hi there.  Bye now."
	a := New(doc)

	first, err := a.Align([]string{"Hi", "there", "."})
	require.NoError(t, err)
	assert.Equal(t, "Hi there.", first.Text)
	assert.Equal(t, 9, a.Cursor())

	second, err := a.Align([]string{"Bye", "now", "."})
	require.NoError(t, err)
	assert.Equal(t, 11, second.First)
	assert.Equal(t, 19, second.Last)
	assert.Equal(t, "Bye now.", second.Text)
}

func TestAlignEmptySentence(t *testing.T) {
	a := New("One. Two.")
	_, err := a.Align([]string{"One", "."})
	require.NoError(t, err)

	al, err := a.Align(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, al.First)
	assert.Equal(t, 4, al.Last)
	assert.Empty(t, al.Text)
	assert.Empty(t, al.Spans)
	assert.Equal(t, 4, a.Cursor())
}

func TestAlignRuneOffsets(t *testing.T) {
	doc := "Zürich ist schön."
	al, err := New(doc).Align([]string{"Zürich", "ist", "schön", "."})
	require.NoError(t, err)

	expected := []sent.Span{{Start: 0, End: 6}, {Start: 7, End: 10}, {Start: 11, End: 16}, {Start: 16, End: 17}}
	assert.Equal(t, expected, al.Spans)

	runes := []rune(doc)
	for i, form := range []string{"Zürich", "ist", "schön", "."} {
		assert.Equal(t, form, string(runes[al.Spans[i].Start:al.Spans[i].End]))
	}
}

func TestAlignMismatch(t *testing.T) {
	a := New(`He said "hi".`)
	_, err := a.Align([]string{"He", "said", "``", "hi", "''", "."})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))

	var me *MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "``", me.Form)
	assert.Equal(t, 7, me.Cursor)
	assert.Equal(t, 2, me.Word)

	// the failed sentence does not move the cursor
	assert.Equal(t, 0, a.Cursor())
}

func TestAlignMismatchPastEnd(t *testing.T) {
	// "cat" exists, but only before the cursor
	a := New("cat dog")
	_, err := a.Align([]string{"cat", "dog", "cat"})
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestAlignEmptyForm(t *testing.T) {
	_, err := New("a b").Align([]string{"a", " "})
	assert.ErrorIs(t, err, sent.ErrValidation)
}

func TestDocumentProperties(t *testing.T) {
	doc := "The bank of the river. The bank was closed; the river was not!  And then?"
	sentences := [][]string{
		{"The", "bank", "of", "the", "river", "."},
		{"The", "bank", "was", "closed", ";", "the", "river", "was", "not", "!"},
		{"And", "then", "?"},
	}

	als, err := Document(doc, sentences)
	require.NoError(t, err)
	require.Len(t, als, 3)

	runes := []rune(doc)
	lastEnd := 0
	for i, al := range als {
		sentSpan := sent.Span{Start: al.First, End: al.Last}
		assert.Equal(t, string(runes[al.First:al.Last]), al.Text)

		for j, span := range al.Spans {
			// monotonicity
			assert.LessOrEqual(t, lastEnd, span.Start)
			lastEnd = span.End

			// round trip
			assert.Equal(t, sentences[i][j], string(runes[span.Start:span.End]))

			// containment
			assert.True(t, sentSpan.Contains(span))
		}
	}
}

func TestDocumentMismatchNoPartial(t *testing.T) {
	als, err := Document("a b. c d.", [][]string{{"a", "b", "."}, {"c", "x"}})
	require.Error(t, err)
	assert.Nil(t, als)
	assert.True(t, strings.HasPrefix(err.Error(), "sentence 1: "))
	assert.ErrorIs(t, err, ErrMismatch)
}
