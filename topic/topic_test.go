package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	expr, err := Parse([]string{"NNP*", "3", "be|have", "CC:and|or", ".", ":"})
	require.NoError(t, err)
	require.Len(t, expr, 5)

	assert.Equal(t, TopicExprItem{Tag: "NNP*"}, expr[0])
	assert.Equal(t, TopicExprItem{Near: 3, Lemmas: []string{"be", "have"}}, expr[1])
	assert.Equal(t, TopicExprItem{Tag: "CC", Lemmas: []string{"and", "or"}}, expr[2])
	assert.Equal(t, TopicExprItem{Tag: "."}, expr[3])
	assert.Equal(t, TopicExprItem{Tag: ":"}, expr[4])

	assert.Equal(t, RequiresOne, expr[0].Requirement())
	assert.Equal(t, RequiresNear, expr[1].Requirement())
	assert.Equal(t, AnyTag, expr[1].TagFilter())
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"2", "cat"},
		{"cat", "2", "3", "dog"},
		{"cat", "2"},
		{"cat", "-1", "dog"},
		{"NN:"},
		{"NN:|"},
	}

	for _, args := range cases {
		_, err := Parse(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestExprString(t *testing.T) {
	args := []string{"NNP*", "3", "be|have", "CC:and|or", "*"}
	expr, err := Parse(args)
	require.NoError(t, err)

	assert.Equal(t, "NNP* 3 be|have CC:and|or *", expr.String())

	again, err := Parse([]string{"NNP*", "3", "be|have", "CC:and|or", "*"})
	require.NoError(t, err)
	assert.True(t, EqualExpr(expr, again))
}

func TestLemmas(t *testing.T) {
	expr, err := Parse([]string{"Be", "NN:Cat", "be|have", "VB*:be", "JJ"})
	require.NoError(t, err)

	// "Be" is a tag, "be|have" is not required
	assert.Equal(t, []string{"cat", "be"}, expr.Lemmas())
}

func TestEqualExprItem(t *testing.T) {
	a := TopicExprItem{Lemmas: []string{"Be"}}
	b := TopicExprItem{Tag: "*", Lemmas: []string{"be"}}
	assert.True(t, EqualExprItem(a, b))

	c := TopicExprItem{Tag: "VB", Lemmas: []string{"be"}}
	assert.False(t, EqualExprItem(a, c))
}

func TestAssemble(t *testing.T) {
	expr, err := Parse([]string{"NNP*", "2", "be"})
	require.NoError(t, err)

	tp := Assemble("names", []TopicExpr{expr})
	assert.Equal(t, "names", tp.Exprs[0][1].TopicName)
	assert.Equal(t, "NNP* 2 be", tp.Exprs[0][1].ExprId)
	assert.Equal(t, [][]string{{"be"}}, tp.LemmaSets())

	lib := Library{tp, {Name: "other"}}
	assert.Equal(t, []string{"names", "other"}, lib.Names())
}
