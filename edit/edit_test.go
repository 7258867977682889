package edit

import (
	"testing"

	"github.com/revelaction/wordspan/topic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func library(t *testing.T) topic.Library {
	t.Helper()
	a, err := topic.Parse([]string{"VB*:see"})
	require.NoError(t, err)
	b, err := topic.Parse([]string{"NNP*", "2", "be"})
	require.NoError(t, err)
	return topic.Library{topic.Assemble("seeing", []topic.TopicExpr{a, b})}
}

func TestParse(t *testing.T) {
	e, err := Parse("!seeing PRP 1 see")
	require.NoError(t, err)
	assert.Equal(t, "seeing", e.Topic)
	assert.Equal(t, Add, e.Action)
	assert.Equal(t, "PRP 1 see", e.Expr.String())

	e, err = Parse("!seeing VB*:see/")
	require.NoError(t, err)
	assert.Equal(t, Delete, e.Action)
	assert.Equal(t, "VB*:see", e.Expr.String())

	e, err = Parse("!seeing VB*:see /")
	require.NoError(t, err)
	assert.Equal(t, Delete, e.Action)

	_, err = Parse("!")
	assert.Error(t, err)
	_, err = Parse("!seeing")
	assert.Error(t, err)
	_, err = Parse("!seeing 2 PRP")
	assert.Error(t, err)
}

func TestIsEdit(t *testing.T) {
	assert.True(t, IsEdit("  !seeing PRP"))
	assert.False(t, IsEdit("seeing PRP"))
}

func TestApplyAdd(t *testing.T) {
	lib := library(t)
	e, err := Parse("!seeing PRP")
	require.NoError(t, err)

	out, err := Apply(lib, e)
	require.NoError(t, err)
	require.Len(t, out[0].Exprs, 3)
	assert.Len(t, lib[0].Exprs, 2)
	assert.Equal(t, 2, out[0].Exprs[2][0].ExprIndex)
	assert.Equal(t, "seeing", out[0].Exprs[2][0].TopicName)

	_, err = Apply(out, e)
	assert.ErrorContains(t, err, "already exists")
}

func TestApplyNewTopic(t *testing.T) {
	e, err := Parse("!hearing VB*:hear")
	require.NoError(t, err)

	out, err := Apply(library(t), e)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "hearing", out[1].Name)
}

func TestApplyDelete(t *testing.T) {
	lib := library(t)
	e, err := Parse("!seeing VB*:see/")
	require.NoError(t, err)

	out, err := Apply(lib, e)
	require.NoError(t, err)
	require.Len(t, out[0].Exprs, 1)
	assert.Equal(t, "NNP* 2 be", out[0].Exprs[0].String())
	assert.Equal(t, 0, out[0].Exprs[0][0].ExprIndex)
	assert.Equal(t, 1, lib[0].Exprs[1][0].ExprIndex)

	_, err = Apply(out, e)
	assert.ErrorContains(t, err, "does not exist")

	e.Topic = "hearing"
	_, err = Apply(lib, e)
	assert.ErrorContains(t, err, "no such topic")
}
