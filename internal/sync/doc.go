// Package sync implements the reconciliation engine at the heart of
// fathomsync.
//
// One cycle lists every meeting known upstream, skips the ones already in the
// state ledger, and walks each remaining item through fetch, format, upload,
// index, and mark-processed, strictly one item at a time. Per-item failures
// are isolated: an item that cannot be processed is counted and the cycle
// moves on. The caller must guarantee at most one cycle in flight at a time;
// Runner does so by construction, running every cycle on a single goroutine.
package sync
