package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/wordspan/phrase"
	"github.com/revelaction/wordspan/storage"
)

type PhraseIndex struct {
	pool *sqlitex.Pool
}

var _ storage.PhraseIndex = (*PhraseIndex)(nil)

func NewPhraseIndex(pool *sqlitex.Pool) *PhraseIndex {
	return &PhraseIndex{pool: pool}
}

func (h *PhraseIndex) Write(ctx context.Context, docId int, phrases []*phrase.Phrase) (err error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	fold := cases.Fold()
	for phraseId, ph := range phrases {
		err = sqlitex.Execute(conn, "INSERT INTO phrases (doc_id, phrase_id, text) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docId, phraseId, ph.Text()},
		})
		if err != nil {
			return fmt.Errorf("failed to insert phrase: %w", err)
		}
		rowID := conn.LastInsertRowID()

		uniqueLemmas := make(map[string]bool)
		for _, lemma := range ph.Lemmas() {
			if lemma != "" {
				uniqueLemmas[fold.String(lemma)] = true
			}
		}

		for lemma := range uniqueLemmas {
			err = sqlitex.Execute(conn, "INSERT INTO phrase_lemmas (lemma, phrase_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{lemma, rowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}

func (h *PhraseIndex) FindCandidates(ctx context.Context, lemmas []string, after storage.Cursor, limit int, onCandidate func(storage.Candidate) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// Build query dynamically based on number of lemmas
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT id, doc_id, phrase_id FROM phrases WHERE id > ?")
	args = append(args, int64(after))

	if len(lemmas) > 0 {
		queryBuilder.WriteString(" AND id IN (")
		fold := cases.Fold()
		for i, lemma := range lemmas {
			if i > 0 {
				queryBuilder.WriteString(" INTERSECT ")
			}
			queryBuilder.WriteString("SELECT phrase_rowid FROM phrase_lemmas WHERE lemma = ?")
			args = append(args, fold.String(lemma))
		}
		queryBuilder.WriteString(")")
	}

	queryBuilder.WriteString(" ORDER BY id LIMIT ?")
	args = append(args, limit)

	newCursor := after
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			newCursor = storage.Cursor(stmt.ColumnInt64(0))
			return onCandidate(storage.Candidate{
				DocId:    stmt.ColumnInt(1),
				PhraseId: stmt.ColumnInt(2),
			})
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}
