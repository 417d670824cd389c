// Package state provides the shared, thread-safe orchestration snapshot.
//
// The controller goroutine is the single writer; the UI reads snapshots
// on its own refresh cadence. Updates hold a write lock, reads a read
// lock, and snapshots are returned by value so neither side can mutate
// the other's view.
//
// On a poll failure the previous job data is kept and only the error and
// consecutive-failure counter change: the authoritative job state lives
// server-side, so a network blip must not erase the last known progress.
package state
