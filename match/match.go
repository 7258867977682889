package match

import (
	"fmt"
	"sort"

	"github.com/revelaction/wordspan/phrase"
	sent "github.com/revelaction/wordspan/sentence"
	"github.com/revelaction/wordspan/topic"
)

// Matcher matchs phrases against a Topic (+ ArgExpr).
// A set of phrases can be matched by repeated `MatchPhrase` calls to the Matcher.
type Matcher struct {
	Topic topic.Topic

	// ArgExpr is an additional topic expresion passed as argument to the
	// command line
	// ArgExpr have an AND semantic, they must match the phrase in addition
	// to one or more TopicExpr of the Topic.
	ArgExpr topic.TopicExpr

	// compiled patterns, same layout as Topic.Exprs and ArgExpr
	topicPatterns [][]Pattern
	argPatterns   []Pattern
}

// ExprMatch contains the words of a phrase matched by one expression.
//
// The expression
//
//	when 4 VB*
//
// matches two times the phrase "when he saw her open the door":
//
//	[when, saw]
//	[when, open]
//
// Each Tokens element is one such occurrence. Items without a near distance
// start a new group of occurrences.
type ExprMatch struct {
	ExprId string        `json:"expr"`
	Tokens [][]sent.Word `json:"tokens"`
}

// PhraseMatch represents the match of "one or more" expressions with a phrase.
type PhraseMatch struct {
	// TopicName is the topic that has some expression which matches the phrase
	TopicName string `json:"topic_name,omitempty"`

	// NumExprs is the number of topic expressions that matched. Used to sort.
	NumExprs int `json:"num_exprs"`

	Matches []ExprMatch `json:"matches"`

	Phrase *phrase.Phrase `json:"-"`

	// Text is the text of the phrase
	Text string `json:"text"`

	DocId    int `json:"doc"`
	PhraseId int `json:"phrase"`
}

// AllTokens returns all the matched words, without duplicates, in reading
// order.
func (pm *PhraseMatch) AllTokens() []sent.Word {
	seen := map[sent.Span]bool{}
	words := []sent.Word{}
	for _, m := range pm.Matches {
		for _, occ := range m.Tokens {
			for _, w := range occ {
				if seen[w.Span()] {
					continue
				}
				seen[w.Span()] = true
				words = append(words, w)
			}
		}
	}

	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Start() < words[j].Start()
	})

	return words
}

// Exprs returns the ids of the matched expressions.
func (pm *PhraseMatch) Exprs() []string {
	ids := make([]string, 0, len(pm.Matches))
	for _, m := range pm.Matches {
		ids = append(ids, m.ExprId)
	}
	return ids
}

// NewMatcher compiles the patterns of the topic.
func NewMatcher(tp topic.Topic) (*Matcher, error) {
	m := &Matcher{Topic: tp}
	for _, expr := range tp.Exprs {
		patterns, err := Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", tp.Name, err)
		}
		m.topicPatterns = append(m.topicPatterns, patterns)
	}

	return m, nil
}

// AddTopicExpr sets the argument expression.
func (m *Matcher) AddTopicExpr(expr topic.TopicExpr) error {
	patterns, err := Compile(expr)
	if err != nil {
		return err
	}

	m.ArgExpr = expr
	m.argPatterns = patterns
	return nil
}

// Compile compiles the patterns of each item of the expression.
func Compile(expr topic.TopicExpr) ([]Pattern, error) {
	patterns := make([]Pattern, len(expr))
	for i, item := range expr {
		p, err := NewPattern(item.TagFilter(), item.Lemmas...)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		patterns[i] = p
	}

	return patterns, nil
}

// MatchPhrase matches a posible Topic AND a possible argument expression
// against the words of the phrase.
//
// The semantic is as follows:
//
//   - If there are both a Topic and an ArgExpr, a phrase match only happens
//     if the ArgExpr matchs AND 'one or more' of the Topic expressions also match.
//
//   - If there is only a Topic, a phrase match only happens if 'one or more'
//     of the Topic expressions match.
//
//   - If there is only an ArgExpr, a phrase match only happens if the ArgExpr
//     matches.
//
// It returns nil if the phrase does not match or has unset words.
func (m *Matcher) MatchPhrase(p *phrase.Phrase, docId, phraseId int) *PhraseMatch {
	hasTopic := len(m.topicPatterns) > 0
	hasExpr := len(m.argPatterns) > 0

	if !hasTopic && !hasExpr {
		return nil
	}

	words, err := p.Words()
	if err != nil {
		return nil
	}

	pm := &PhraseMatch{
		TopicName: m.Topic.Name,
		Phrase:    p,
		Text:      p.Text(),
		DocId:     docId,
		PhraseId:  phraseId,
	}

	if hasExpr {
		occ := exprMatch(words, m.ArgExpr, m.argPatterns)
		if occ == nil {
			return nil
		}
		pm.Matches = append(pm.Matches, ExprMatch{ExprId: m.ArgExpr.String(), Tokens: occ})
	}

	for i, patterns := range m.topicPatterns {
		expr := m.Topic.Exprs[i]
		if occ := exprMatch(words, expr, patterns); occ != nil {
			pm.NumExprs++
			pm.Matches = append(pm.Matches, ExprMatch{ExprId: expr.String(), Tokens: occ})
		}
	}

	if hasTopic && pm.NumExprs == 0 {
		return nil
	}

	return pm
}

// exprMatch returns the occurrences of the expression in the words, nil if
// some item does not match.
func exprMatch(words []sent.Word, expr topic.TopicExpr, patterns []Pattern) [][]sent.Word {
	// each group is a list of candidate position sequences
	var groups [][][]int

	for i, item := range expr {
		switch item.Requirement() {
		case topic.RequiresNear:
			if len(groups) == 0 {
				return nil
			}
			last := len(groups) - 1
			extended := matchNear(words, groups[last], patterns[i], item.Near)
			if len(extended) == 0 {
				return nil
			}
			groups[last] = extended

		default:
			found := matchOne(words, patterns[i])
			if len(found) == 0 {
				return nil
			}
			groups = append(groups, found)
		}
	}

	var occ [][]sent.Word
	for _, group := range groups {
		for _, seq := range group {
			ws := make([]sent.Word, len(seq))
			for j, pos := range seq {
				ws[j] = words[pos]
			}
			occ = append(occ, ws)
		}
	}

	return occ
}

func matchOne(words []sent.Word, p Pattern) [][]int {
	var found [][]int
	for i, w := range words {
		if p.Match(w) {
			found = append(found, []int{i})
		}
	}

	return found
}

// matchNear extends each candidate with the words matching p in the near
// words following its last position.
func matchNear(words []sent.Word, candidates [][]int, p Pattern, near int) [][]int {
	var extended [][]int
	for _, c := range candidates {
		last := c[len(c)-1]
		end := min(last+near, len(words)-1)

		for pos := last + 1; pos <= end; pos++ {
			if !p.Match(words[pos]) {
				continue
			}

			seq := make([]int, 0, len(c)+1)
			seq = append(seq, c...)
			seq = append(seq, pos)
			extended = append(extended, seq)
		}
	}

	return extended
}

// Sort orders the matches by number of matched expressions, then document
// and phrase.
func Sort(results []*PhraseMatch) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].NumExprs != results[j].NumExprs {
			return results[i].NumExprs > results[j].NumExprs
		}
		if results[i].DocId != results[j].DocId {
			return results[i].DocId < results[j].DocId
		}
		return results[i].PhraseId < results[j].PhraseId
	})
}
