package storage

import (
	"context"

	"github.com/poiesic/prospect/core"
)

// SnapshotRepository persists indexed corpora between runs.
// Implementations must be thread-safe and support concurrent access.
type SnapshotRepository interface {
	// SaveSnapshot replaces the stored snapshot with the given indexed corpus.
	// Records dropped from the index (nil vectors) are persisted as such.
	SaveSnapshot(ctx context.Context, idx *core.IndexedCorpus) error

	// LoadSnapshot reads back the most recently saved indexed corpus.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadSnapshot(ctx context.Context) (*core.IndexedCorpus, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
