package storage

import (
	"context"

	"github.com/revelaction/wordspan/phrase"
	"github.com/revelaction/wordspan/topic"
)

// TopicReader defines read operations for topic storage
type TopicReader interface {
	// ReadAll returns all topics from storage
	ReadAll() (topic.Library, error)

	// Read returns a single topic by name
	Read(name string) (topic.Topic, error)

	// Names returns the names of the stored topics, sorted.
	Names() ([]string, error)
}

// Cursor for paginated lemma-based queries
type Cursor int64

// Candidate identifies a phrase of a document.
type Candidate struct {
	DocId    int
	PhraseId int
}

// PhraseIndex is a lemma index over the phrases of a set of documents.
type PhraseIndex interface {
	// Write indexes the lemmas of the phrases of a document. PhraseIds are
	// the positions in the slice.
	Write(ctx context.Context, docId int, phrases []*phrase.Phrase) error

	// FindCandidates returns the phrases containing ALL given lemmas,
	// resuming after the given cursor. It calls onCandidate for each result.
	// Returns the new cursor and any error. Lemmas are compared case
	// insensitively. With no lemmas, every phrase is a candidate.
	FindCandidates(ctx context.Context, lemmas []string, after Cursor, limit int, onCandidate func(Candidate) error) (Cursor, error)
}
