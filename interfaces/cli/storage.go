package cli

import (
	"fmt"

	domainconfig "github.com/felixgeelhaar/explore-go/domain/config"
	"github.com/felixgeelhaar/explore-go/domain/run"
	badgerstore "github.com/felixgeelhaar/explore-go/infrastructure/storage/badger"
	"github.com/felixgeelhaar/explore-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/explore-go/infrastructure/storage/sqlite"
)

// sessionStores bundles the stores selected by a scenario's storage config.
type sessionStores struct {
	Runs      run.Store
	Snapshots run.SnapshotStore

	closers []func() error
}

// Close closes every opened backend.
func (s *sessionStores) Close() {
	for _, closeFn := range s.closers {
		_ = closeFn()
	}
}

// openStores opens the run store (and snapshot store, when enabled) for the
// configured backend. The zero backend is in-memory.
func openStores(cfg domainconfig.StorageConfig) (*sessionStores, error) {
	stores := &sessionStores{}

	switch cfg.Backend {
	case "", "memory":
		stores.Runs = memory.NewRunStore()

	case "sqlite":
		sqliteCfg := sqlite.DefaultConfig()
		if cfg.DSN != "" {
			sqliteCfg.DSN = cfg.DSN
		}
		store, err := sqlite.NewRunStore(sqliteCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		stores.Runs = store
		stores.closers = append(stores.closers, store.Close)

	case "badger":
		stores.Runs = memory.NewRunStore()
		badgerCfg := badgerstore.DefaultConfig()
		if cfg.Dir != "" {
			badgerCfg.Dir = cfg.Dir
		} else {
			badgerCfg.InMemory = true
		}
		snaps, err := badgerstore.NewSnapshotStore(badgerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		stores.Snapshots = snaps
		stores.closers = append(stores.closers, snaps.Close)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	if cfg.Snapshots && stores.Snapshots == nil {
		badgerCfg := badgerstore.DefaultConfig()
		if cfg.Dir != "" {
			badgerCfg.Dir = cfg.Dir
		} else {
			badgerCfg.InMemory = true
		}
		snaps, err := badgerstore.NewSnapshotStore(badgerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		stores.Snapshots = snaps
		stores.closers = append(stores.closers, snaps.Close)
	}

	return stores, nil
}
