package topic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	RequiresOne = iota
	RequiresNear
)

// AnyTag is the tag filter matching every POS tag.
const AnyTag = "*"

type Topic struct {

	// the topic name
	Name string

	// the expressions of the topic
	Exprs []TopicExpr
}

// TopicExpr is an ordered list of items. A phrase matches the expression if
// every item matches one of its words.
type TopicExpr []TopicExprItem

func (m TopicExpr) String() string {
	sl := []string{}
	for _, item := range m {
		if item.Near > 0 {
			sl = append(sl, strconv.Itoa(item.Near))
		}

		sl = append(sl, item.String())
	}

	return strings.Join(sl, " ")
}

// Lemmas returns the unique lemmas of the items that have exactly one lemma.
// Those are the lemmas every matching phrase must contain.
func (m TopicExpr) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, item := range m {
		if len(item.Lemmas) != 1 {
			continue
		}

		l := strings.ToLower(item.Lemmas[0])
		if !seen[l] {
			seen[l] = true
			lemmas = append(lemmas, l)
		}
	}

	return lemmas
}

// LemmaSets returns the required lemmas of each expression of the topic.
func (t Topic) LemmaSets() [][]string {
	var sets [][]string
	for _, e := range t.Exprs {
		sets = append(sets, e.Lemmas())
	}
	return sets
}

type TopicExprItem struct {

	// The Expr index.
	ExprIndex int `json:"-"`

	// ExprId is the Expresion String(). It should be unique as two identical expresions can
	// not be in the same topic file.
	ExprId string `json:"-"`

	// TopicName references the Topic of the Item
	TopicName string `json:"-"`

	// Near is the maximum distance, in words, from the word matched by the
	// previous item.
	Near int `json:"near,omitempty"`

	// Tag is a POS tag filter. A trailing '*' matches the family of tags
	// starting with the rest ("NN*" matches NN, NNS, NNP and NNPS).
	Tag string `json:"tag,omitempty"`

	// Lemmas is the list of accepted lemmas (case insensitive). Empty accepts
	// every lemma.
	Lemmas []string `json:"lemmas,omitempty"`
}

// TagFilter returns the tag filter of the item, AnyTag if not set.
func (m TopicExprItem) TagFilter() string {
	if m.Tag == "" {
		return AnyTag
	}
	return m.Tag
}

// String renders the item in the syntax accepted by Parse.
func (m TopicExprItem) String() string {
	lemmas := strings.Join(m.Lemmas, "|")

	if m.Tag == "" || m.Tag == AnyTag {
		if lemmas != "" {
			return lemmas
		}
		return AnyTag
	}

	if lemmas == "" {
		return m.Tag
	}

	return m.Tag + ":" + lemmas
}

func (m TopicExprItem) Requirement() int {
	if m.Near > 0 {
		return RequiresNear
	}

	return RequiresOne
}

// Library is a collection of topics
type Library []Topic

// Names returns a list of all topic names in the library
func (l Library) Names() []string {
	var names []string
	for _, t := range l {
		names = append(names, t.Name)
	}
	return names
}

// Assemble sets TopicName, ExprIndex and ExprId for each item.
func Assemble(name string, exprs []TopicExpr) Topic {
	for index := range exprs {
		for idx := range exprs[index] {
			exprs[index][idx].TopicName = name
			exprs[index][idx].ExprIndex = index
			exprs[index][idx].ExprId = exprs[index].String()
		}
	}

	return Topic{
		Name:  name,
		Exprs: exprs,
	}
}

// Parse parses the user input and converts it to a TopicExpr.
//
// Each argument is an item, except numbers, which set the Near distance of
// the following item:
//
//	NN*             any noun
//	CC:and|or       the conjunctions "and" or "or"
//	be|have         the lemmas "be" or "have", any tag
//	NNP* 3 be       a proper noun followed by "be" within three words
//
// An argument starting with an upper case letter or with punctuation is a
// tag filter, optionally followed by ':' and the lemmas.
func Parse(args []string) (TopicExpr, error) {

	isLastInt := false
	var expr TopicExpr
	var lastNear int64 = 0
	for idx, arg := range args {
		near, err := strconv.ParseInt(arg, 10, 64)
		if err == nil {
			if idx == 0 {
				return nil, errors.New("First expression argument can not be number")
			}

			if isLastInt {
				return nil, errors.New("Can not parse two consecutive numbers in the expression")
			}

			if near <= 0 {
				return nil, fmt.Errorf("Near distance must be positive: %d", near)
			}

			lastNear = near
			isLastInt = true
			continue
		}

		item, err := parseItem(arg)
		if err != nil {
			return nil, err
		}

		item.Near = int(lastNear)
		expr = append(expr, item)

		lastNear = 0
		isLastInt = false
	}

	if isLastInt {
		return nil, errors.New("Last expression argument can not be number")
	}

	if len(expr) == 0 {
		return nil, errors.New("Empty expression")
	}

	return expr, nil
}

func parseItem(arg string) (TopicExprItem, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return TopicExprItem{}, errors.New("Empty expression item")
	}

	firstChar := []rune(arg)[0]

	isTag := unicode.IsUpper(firstChar) || !(unicode.IsLetter(firstChar) || unicode.IsDigit(firstChar))
	if !isTag {
		return TopicExprItem{Lemmas: splitLemmas(arg)}, nil
	}

	// ':' is also a POS tag, only split after the first char
	tag, lemmas, found := strings.Cut(arg[len(string(firstChar)):], ":")
	tag = string(firstChar) + tag
	if !found {
		return TopicExprItem{Tag: tag}, nil
	}

	l := splitLemmas(lemmas)
	if len(l) == 0 {
		return TopicExprItem{}, fmt.Errorf("No lemmas after ':' in %q", arg)
	}

	return TopicExprItem{Tag: tag, Lemmas: l}, nil
}

func splitLemmas(s string) []string {
	var lemmas []string
	for _, l := range strings.Split(s, "|") {
		if l = strings.TrimSpace(l); l != "" {
			lemmas = append(lemmas, l)
		}
	}
	return lemmas
}

// EqualExpr determines if two expresions are the same.
// the Equality requires slice order. It does not support conmutativity:
//
//	itemA, itemB != itemB, itemA
func EqualExpr(a, b TopicExpr) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if !EqualExprItem(v, b[i]) {
			return false
		}
	}
	return true
}

// EqualExprItem determines if two expresions items are the same. Two
// TopicExprItem are the same if they have the same Tag, Near and Lemmas.
func EqualExprItem(a, b TopicExprItem) bool {

	if a.TagFilter() != b.TagFilter() {
		return false
	}

	if a.Near != b.Near {
		return false
	}

	if len(a.Lemmas) != len(b.Lemmas) {
		return false
	}

	for i := range a.Lemmas {
		if !strings.EqualFold(a.Lemmas[i], b.Lemmas[i]) {
			return false
		}
	}

	return true
}
