package state

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "state.json"), testLogger())
	s.Load()

	assert.Equal(t, 0, s.ProcessedCount())
	assert.False(t, s.IsProcessed("1"))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"truncated`), 0o600))

	s := New(path, testLogger())
	s.Load()

	assert.Equal(t, 0, s.ProcessedCount(), "corrupt snapshot must be treated as empty")
}

func TestMarkProcessedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	syncedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s := New(path, testLogger())
	s.Load()
	s.MarkProcessed("118794290", "drive-file-id", syncedAt)
	s.MarkProcessed("42", SentinelRef, syncedAt)

	// A fresh store loading the same file sees both records.
	reloaded := New(path, testLogger())
	reloaded.Load()

	assert.Equal(t, 2, reloaded.ProcessedCount())
	assert.True(t, reloaded.IsProcessed("118794290"))
	assert.True(t, reloaded.IsProcessed("42"))
	assert.False(t, reloaded.IsProcessed("7"))

	rec := reloaded.processed["42"]
	assert.Equal(t, SentinelRef, rec.PublishedRef)
	assert.True(t, rec.SyncedAt.Equal(syncedAt))
}

func TestMarkProcessedPersistsEachMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := New(path, testLogger())
	s.Load()
	s.MarkProcessed("1", "ref-1", time.Now())

	// The snapshot on disk must already contain the first mutation,
	// before any later ones happen.
	check := New(path, testLogger())
	check.Load()
	assert.True(t, check.IsProcessed("1"))
}

func TestMarkProcessedCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "state.json")

	s := New(path, testLogger())
	s.Load()
	s.MarkProcessed("1", "ref-1", time.Now())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPersistFailureNotFatal(t *testing.T) {
	dir := t.TempDir()
	// Point the state file at a path whose parent is a file, so writes fail.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := New(filepath.Join(blocker, "state.json"), testLogger())
	s.Load()
	s.MarkProcessed("1", "ref-1", time.Now())

	// In-memory state stays authoritative even though the write failed.
	assert.True(t, s.IsProcessed("1"))
}
