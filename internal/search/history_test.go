package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/search"
	"github.com/UnknownOlympus/pinpoint/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for testing.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (ms *memStore) Get(key string) ([]byte, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, ok := ms.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return value, nil
}

func (ms *memStore) Put(key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.failPut {
		return errors.New("store write failed")
	}
	ms.data[key] = value
	return nil
}

func (ms *memStore) Close() error { return nil }

func TestHistory_Add(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("newest entry goes first", func(t *testing.T) {
		history := search.NewHistory(newMemStore(), logger)

		history.Add(ctx, "Surabaya")
		history.Add(ctx, "Malang")

		assert.Equal(t, []string{"Malang", "Surabaya"}, history.Entries())
	})

	t.Run("repeat query keeps exactly one entry at the head", func(t *testing.T) {
		history := search.NewHistory(newMemStore(), logger)

		history.Add(ctx, "Surabaya")
		history.Add(ctx, "Malang")
		history.Add(ctx, "surabaya ")

		assert.Equal(t, []string{"surabaya ", "Malang"}, history.Entries())
	})

	t.Run("never exceeds five entries", func(t *testing.T) {
		history := search.NewHistory(newMemStore(), logger)

		for i := 0; i < 8; i++ {
			history.Add(ctx, fmt.Sprintf("query-%d", i))
		}

		entries := history.Entries()
		require.Len(t, entries, search.HistoryLimit)
		assert.Equal(t, "query-7", entries[0])
		assert.Equal(t, "query-3", entries[4])
	})

	t.Run("blank queries are ignored", func(t *testing.T) {
		history := search.NewHistory(newMemStore(), logger)

		history.Add(ctx, "   ")

		assert.Empty(t, history.Entries())
	})

	t.Run("persist failure is absorbed", func(t *testing.T) {
		store := newMemStore()
		store.failPut = true
		history := search.NewHistory(store, logger)

		history.Add(ctx, "Surabaya")

		assert.Equal(t, []string{"Surabaya"}, history.Entries())
	})
}

func TestHistory_Persistence(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("entries survive a reload", func(t *testing.T) {
		store := newMemStore()

		first := search.NewHistory(store, logger)
		first.Add(ctx, "Surabaya")
		first.Add(ctx, "Malang")

		second := search.NewHistory(store, logger)
		assert.Equal(t, []string{"Malang", "Surabaya"}, second.Entries())
	})

	t.Run("stored value is a JSON array under the fixed key", func(t *testing.T) {
		store := newMemStore()

		history := search.NewHistory(store, logger)
		history.Add(ctx, "Surabaya")

		raw, err := store.Get(search.HistoryKey)
		require.NoError(t, err)

		var decoded []string
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, []string{"Surabaya"}, decoded)
	})

	t.Run("corrupt record starts empty", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Put(search.HistoryKey, []byte("not json")))

		history := search.NewHistory(store, logger)

		assert.Empty(t, history.Entries())
	})

	t.Run("oversized record is trimmed on load", func(t *testing.T) {
		store := newMemStore()
		raw, err := json.Marshal([]string{"a", "b", "c", "d", "e", "f", "g"})
		require.NoError(t, err)
		require.NoError(t, store.Put(search.HistoryKey, raw))

		history := search.NewHistory(store, logger)

		assert.Len(t, history.Entries(), search.HistoryLimit)
	})
}
