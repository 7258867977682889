package search

import (
	"context"
	"fmt"

	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/phrase"
	"github.com/revelaction/wordspan/storage"
	"github.com/revelaction/wordspan/topic"
)

// PageSize is the number of candidates fetched per index query.
const PageSize = 500

// Search orchestrates the strategy selection for finding phrases
// that match a topic expression against a set of documents.
type Search struct {
	topic topic.Topic
	index storage.PhraseIndex
	docs  map[int][]*phrase.Phrase
	docID *int
}

// New creates a new Search instance with the given topic and index.
// The topic is used to construct the internal Matcher for evaluating expressions.
func New(t topic.Topic, idx storage.PhraseIndex) *Search {
	return &Search{
		topic: t,
		index: idx,
		docs:  map[int][]*phrase.Phrase{},
	}
}

// Add indexes the phrases of a document.
func (s *Search) Add(ctx context.Context, docId int, phrases []*phrase.Phrase) error {
	if _, ok := s.docs[docId]; ok {
		return fmt.Errorf("document %d already added", docId)
	}

	if err := s.index.Write(ctx, docId, phrases); err != nil {
		return fmt.Errorf("failed to index document %d: %w", docId, err)
	}

	s.docs[docId] = phrases
	return nil
}

// WithTopic returns a Search over the same documents and index with
// another topic.
func (s *Search) WithTopic(t topic.Topic) *Search {
	c := *s
	c.topic = t
	return &c
}

// WithDocID returns a Search restricted to a single document ID. The
// phrases of the document are scanned without the index.
func (s *Search) WithDocID(id int) *Search {
	c := *s
	c.docID = &id
	return &c
}

// Phrases returns matched phrases for the given expression, handling pagination.
// The required lemmas of the expression select the candidates from the index.
func (s *Search) Phrases(ctx context.Context, expr topic.TopicExpr, cursor storage.Cursor, limit int, onMatch func(*match.PhraseMatch) error) (storage.Cursor, error) {
	matcher, err := s.matcher(expr)
	if err != nil {
		return cursor, err
	}

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		return cursor, s.scan(*s.docID, matcher, onMatch)
	}

	// Strategy 2: Find candidates (indexed search)
	return s.index.FindCandidates(ctx, expr.Lemmas(), cursor, limit, func(c storage.Candidate) error {
		if pm := s.matchCandidate(matcher, c); pm != nil {
			return onMatch(pm)
		}
		return nil
	})
}

// All returns every matched phrase for the expression, in index order.
func (s *Search) All(ctx context.Context, expr topic.TopicExpr, onMatch func(*match.PhraseMatch) error) error {
	var cursor storage.Cursor
	for {
		next, err := s.Phrases(ctx, expr, cursor, PageSize, onMatch)
		if err != nil {
			return err
		}

		if s.docID != nil || next == cursor {
			return nil
		}

		cursor = next
	}
}

// Topic returns the phrases matching the topic alone. Each expression of the
// topic selects its own candidates; a phrase is matched once.
func (s *Search) Topic(ctx context.Context, onMatch func(*match.PhraseMatch) error) error {
	matcher, err := s.matcher(nil)
	if err != nil {
		return err
	}

	if s.docID != nil {
		return s.scan(*s.docID, matcher, onMatch)
	}

	queries := s.topic.LemmaSets()
	for _, q := range queries {
		// an expression without required lemmas can match any phrase
		if len(q) == 0 {
			queries = [][]string{nil}
			break
		}
	}

	seen := map[storage.Candidate]bool{}
	for _, lemmas := range queries {
		var cursor storage.Cursor
		for {
			next, err := s.index.FindCandidates(ctx, lemmas, cursor, PageSize, func(c storage.Candidate) error {
				if seen[c] {
					return nil
				}
				seen[c] = true

				if pm := s.matchCandidate(matcher, c); pm != nil {
					return onMatch(pm)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if next == cursor {
				break
			}
			cursor = next
		}
	}

	return nil
}

func (s *Search) matcher(expr topic.TopicExpr) (*match.Matcher, error) {
	m, err := match.NewMatcher(s.topic)
	if err != nil {
		return nil, err
	}

	if len(expr) > 0 {
		if err := m.AddTopicExpr(expr); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (s *Search) scan(docId int, m *match.Matcher, onMatch func(*match.PhraseMatch) error) error {
	phrases, ok := s.docs[docId]
	if !ok {
		return fmt.Errorf("document %d not found", docId)
	}

	for i, p := range phrases {
		if pm := m.MatchPhrase(p, docId, i); pm != nil {
			if err := onMatch(pm); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Search) matchCandidate(m *match.Matcher, c storage.Candidate) *match.PhraseMatch {
	phrases := s.docs[c.DocId]
	if c.PhraseId < 0 || c.PhraseId >= len(phrases) {
		return nil
	}

	return m.MatchPhrase(phrases[c.PhraseId], c.DocId, c.PhraseId)
}
