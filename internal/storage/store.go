package storage

import "errors"

// ErrKeyNotFound is returned when the requested key has never been written.
var ErrKeyNotFound = errors.New("key not found in store")

// Store is a minimal durable key-value store. The picker uses it solely to
// persist small best-effort state (the recent-search list) between runs; no
// transactional guarantees are required and last-writer-wins is acceptable.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}
