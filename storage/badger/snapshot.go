package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/prospect/core"
	"github.com/poiesic/prospect/storage"
)

// SnapshotStore implements storage.SnapshotRepository for BadgerDB.
// The store holds at most one snapshot; SaveSnapshot replaces it wholesale.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotStore)(nil)

// NewSnapshotStore creates a snapshot store over an open backend.
func NewSnapshotStore(backend *Backend) (*SnapshotStore, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &SnapshotStore{backend: backend}, nil
}

// SaveSnapshot replaces the stored snapshot with the given indexed corpus.
//
// Records and vectors are keyed by corpus position so the load path can
// rebuild the corpus in insertion order. Positions dropped from the index
// get no vector entry. The previous snapshot is removed first, so a crash
// mid-save loses the snapshot rather than merging two builds; the metadata
// keys are written last and a load refuses to proceed without them.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, idx *core.IndexedCorpus) error {
	if idx == nil || idx.Corpus == nil {
		return storage.ErrNilSnapshot
	}

	err := s.backend.DropPrefix(
		[]byte(snapshotRecordPrefix),
		[]byte(snapshotVectorPrefix),
		[]byte("snapmeta"),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	// A snapshot can exceed a single transaction's size limit, so bulk-load
	// through a write batch.
	batch := s.backend.NewWriteBatch()
	defer batch.Cancel()

	for i := 0; i < idx.Corpus.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := idx.Corpus.At(i)
		if err := batch.Set(makeRecordKey(i), storage.MarshalRecord(record)); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}

		if i < len(idx.Vectors) && idx.Vectors[i] != nil {
			if err := batch.Set(makeVectorKey(i), storage.MarshalVector(idx.Vectors[i])); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
			}
		}
	}

	if err := batch.Set([]byte(snapshotMetaDim), storage.MarshalUint64(uint64(idx.Dim))); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	if err := batch.Set([]byte(snapshotMetaCount), storage.MarshalUint64(uint64(idx.Corpus.Len()))); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

// LoadSnapshot reads back the most recently saved indexed corpus.
// Returns storage.ErrNotFound if no snapshot has been saved.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*core.IndexedCorpus, error) {
	var (
		count   uint64
		dim     uint64
		corpus  = core.NewCorpus()
		vectors [][]float32
	)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		count, err = s.readMeta(tx, snapshotMetaCount)
		if err != nil {
			return err
		}
		dim, err = s.readMeta(tx, snapshotMetaDim)
		if err != nil {
			return err
		}

		vectors = make([][]float32, count)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Record keys iterate in position order (BigEndian positions).
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record *core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
			}
			if !corpus.Add(record) {
				return fmt.Errorf("%w: duplicate URL %s", storage.ErrCorruptSnapshot, record.URL)
			}
		}

		if uint64(corpus.Len()) != count {
			return fmt.Errorf("%w: expected %d records, found %d",
				storage.ErrCorruptSnapshot, count, corpus.Len())
		}

		return s.loadVectors(ctx, tx, vectors)
	}, false)
	if err != nil {
		return nil, err
	}

	return &core.IndexedCorpus{
		Corpus:  corpus,
		Vectors: vectors,
		Dim:     int(dim),
	}, nil
}

// Close releases the store. The backend is owned by the caller.
func (s *SnapshotStore) Close() error {
	return nil
}

func (s *SnapshotStore) readMeta(tx *badger.Txn, key string) (uint64, error) {
	item, err := tx.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var value uint64
	err = item.Value(func(val []byte) error {
		var err error
		value, err = storage.UnmarshalUint64(val)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
	}
	return value, nil
}

func (s *SnapshotStore) loadVectors(ctx context.Context, tx *badger.Txn, vectors [][]float32) error {
	prefix := []byte(snapshotVectorPrefix + ":")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		item := iter.Item()
		key := item.Key()
		if len(key) != len(prefix)+8 {
			return fmt.Errorf("%w: malformed vector key", storage.ErrCorruptSnapshot)
		}
		position := binary.BigEndian.Uint64(key[len(prefix):])
		if position >= uint64(len(vectors)) {
			return fmt.Errorf("%w: vector position %d out of range", storage.ErrCorruptSnapshot, position)
		}

		err := item.Value(func(val []byte) error {
			vector, err := storage.UnmarshalVector(val)
			if err != nil {
				return err
			}
			vectors[position] = vector
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
		}
	}
	return nil
}
