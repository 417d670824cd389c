// Package ui renders the ingestion session as a small Bubble Tea
// program: a phase line, the pipeline step list with a progress bar, and
// the final outcome.
//
// The model is a read-only consumer of state.Store snapshots fetched on
// a tick, so the UI can be torn down and recreated (or skipped entirely
// with -no-ui) without affecting orchestration. Quitting stops
// observation only; the remote job keeps running.
package ui
