package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/UnknownOlympus/pinpoint/internal/storage"
)

// HistoryKey is the fixed store key the recent-search list is persisted under.
const HistoryKey = "pinpoint:recent-searches"

// HistoryLimit caps how many recent queries are retained.
const HistoryLimit = 5

// History is the recent-search list: most-recent-first, deduplicated, capped
// at HistoryLimit, persisted as a JSON array under HistoryKey. It is loaded
// once at construction and written after every successful search; persistence
// is best-effort, so write failures are logged and otherwise ignored.
type History struct {
	mu      sync.Mutex
	store   storage.Store
	log     *slog.Logger
	entries []string
}

// NewHistory creates a History backed by the given store, loading any
// previously persisted entries. A corrupt or missing record starts the list
// empty rather than failing.
func NewHistory(store storage.Store, log *slog.Logger) *History {
	hst := &History{store: store, log: log}

	raw, err := store.Get(HistoryKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Warn("Failed to load recent searches, starting empty", "error", err)
		}
		return hst
	}

	if err = json.Unmarshal(raw, &hst.entries); err != nil {
		log.Warn("Corrupt recent-search record, starting empty", "error", err)
		hst.entries = nil
	}
	if len(hst.entries) > HistoryLimit {
		hst.entries = hst.entries[:HistoryLimit]
	}

	return hst
}

// Add records query at the head of the list, removing any earlier occurrence
// of the same query and trimming the list to HistoryLimit, then persists the
// result.
func (h *History) Add(ctx context.Context, query string) {
	normalized := Normalize(query)
	if normalized == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	deduped := make([]string, 0, len(h.entries)+1)
	deduped = append(deduped, query)
	for _, entry := range h.entries {
		if Normalize(entry) != normalized {
			deduped = append(deduped, entry)
		}
	}
	if len(deduped) > HistoryLimit {
		deduped = deduped[:HistoryLimit]
	}
	h.entries = deduped

	if err := h.persist(); err != nil {
		h.log.WarnContext(ctx, "Failed to persist recent searches", "error", err)
	}
}

// Entries returns a copy of the list, most recent first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) persist() error {
	raw, err := json.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("failed to encode recent searches: %w", err)
	}
	if err = h.store.Put(HistoryKey, raw); err != nil {
		return fmt.Errorf("failed to store recent searches: %w", err)
	}
	return nil
}
