package storage

import (
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on top of an embedded Badger database.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

// NewBadgerStore opens (or creates) a Badger database at the given path.
// An empty path opens an in-memory database, which is useful for tests and
// for running without a writable data directory.
func NewBadgerStore(path string, log *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}

	return &BadgerStore{db: db, log: log}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (bs *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte

	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, nil
}

// Put stores value under key, overwriting any previous value.
func (bs *BadgerStore) Put(key string, value []byte) error {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	return nil
}

// Close releases the underlying database. Safe to call once.
func (bs *BadgerStore) Close() error {
	if err := bs.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger store: %w", err)
	}
	return nil
}

// Healthy reports whether the store is still usable. Used by the monitoring
// server's health check.
func (bs *BadgerStore) Healthy() bool {
	return !bs.db.IsClosed()
}
