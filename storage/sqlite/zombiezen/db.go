package zombiezen

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// IndexSchema is the schema script of the phrase index.
const IndexSchema = "index.sql"

// NewMemoryPool creates a pool over a private in-memory database with the
// index schema. Each in-memory connection sees its own database, so the
// pool has a single connection.
func NewMemoryPool(ctx context.Context) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file::memory:?mode=memory", sqlitex.PoolOptions{
		PoolSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory zombiezen pool: %w", err)
	}

	if err := CreateSchemas(ctx, pool, IndexSchema); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
