package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/felixgeelhaar/explore-go/domain/run"
)

// SnapshotStore is a BadgerDB-backed implementation of run.SnapshotStore.
// Snapshots are keyed by run ID plus a big-endian tick so that iteration
// yields them in tick order.
type SnapshotStore struct {
	db        *badger.DB
	keyPrefix string
}

// NewSnapshotStore creates a snapshot store with the given configuration.
func NewSnapshotStore(cfg Config, opts ...Option) (*SnapshotStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	return &SnapshotStore{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewSnapshotStoreFromDB creates a snapshot store from an existing database.
func NewSnapshotStoreFromDB(db *badger.DB, keyPrefix string) *SnapshotStore {
	return &SnapshotStore{db: db, keyPrefix: keyPrefix}
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Key format: prefix + "snap:" + runID + ":" + tick (8 bytes, big-endian).
func (s *SnapshotStore) snapshotKey(runID string, tick int) []byte {
	tickBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(tickBytes, uint64(tick))
	return append([]byte(s.keyPrefix+"snap:"+runID+":"), tickBytes...)
}

func (s *SnapshotStore) runPrefix(runID string) []byte {
	return []byte(s.keyPrefix + "snap:" + runID + ":")
}

// Append persists a snapshot.
func (s *SnapshotStore) Append(ctx context.Context, snap run.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.RunID == "" {
		return run.ErrInvalidRunID
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.snapshotKey(snap.RunID, snap.Tick), data)
	})
}

// List returns all snapshots for a run in tick order.
func (s *SnapshotStore) List(ctx context.Context, runID string) ([]run.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if runID == "" {
		return nil, run.ErrInvalidRunID
	}

	var snaps []run.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.runPrefix(runID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var snap run.Snapshot
				if err := json.Unmarshal(val, &snap); err != nil {
					return err
				}
				snaps = append(snaps, snap)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// DeleteRun removes all snapshots for a run.
func (s *SnapshotStore) DeleteRun(ctx context.Context, runID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if runID == "" {
		return run.ErrInvalidRunID
	}

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.runPrefix(runID)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
