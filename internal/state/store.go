// Package state tracks which recordings have already been synced.
//
// The ledger is a plain JSON snapshot on disk, rewritten in full after every
// mutation. A total snapshot keeps the corruption surface down to a single
// interrupted write, which the load path absorbs by starting empty.
package state

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fathomsync/fathomsync/internal/logging"
)

// SentinelRef marks a recording as processed without an uploaded artifact,
// e.g. a transcript that is permanently unavailable upstream.
const SentinelRef = "N/A"

// Record is the persisted outcome for one processed recording.
type Record struct {
	PublishedRef string    `json:"published_ref"`
	SyncedAt     time.Time `json:"synced_at"`
}

// Store is the durable idempotency ledger mapping recording id to its sync
// outcome. Once an id has a record it is never reprocessed. Store is not safe
// for concurrent use; the sync loop is the only caller.
type Store struct {
	path      string
	processed map[string]Record
	logger    *slog.Logger
}

// New creates a Store backed by the given file path. Call Load before use.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:      path,
		processed: make(map[string]Record),
		logger:    logging.WithService(logger, "state"),
	}
}

// Load reads the snapshot from disk. A missing file, unreadable file, or
// corrupt snapshot all leave the store empty: corruption is logged and
// recovered from, never fatal.
func (s *Store) Load() {
	s.processed = make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read state file, starting empty", logging.Err(err))
		}
		return
	}

	var processed map[string]Record
	if err := json.Unmarshal(data, &processed); err != nil {
		s.logger.Warn("failed to parse state file, starting empty", logging.Err(err))
		return
	}
	if processed != nil {
		s.processed = processed
	}
}

// IsProcessed reports whether the recording id already has a sync record.
func (s *Store) IsProcessed(id string) bool {
	_, ok := s.processed[id]
	return ok
}

// MarkProcessed records the outcome for a recording and synchronously writes
// the whole snapshot to disk. A persist failure is logged but not returned:
// the in-memory map stays authoritative for the rest of the process lifetime.
func (s *Store) MarkProcessed(id, publishedRef string, syncedAt time.Time) {
	s.processed[id] = Record{
		PublishedRef: publishedRef,
		SyncedAt:     syncedAt,
	}
	s.save()
}

// ProcessedCount returns the number of recordings with a sync record.
func (s *Store) ProcessedCount() int {
	return len(s.processed)
}

func (s *Store) save() {
	data, err := json.MarshalIndent(s.processed, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode state snapshot", logging.Err(err))
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error("failed to create state directory", logging.Err(err))
			return
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Error("failed to save state file", logging.Err(err))
	}
}
