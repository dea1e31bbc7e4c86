// Package snapshot persists raw gst-inspect dumps in SQLite so the catalog can
// be rebuilt without re-running the tool.
//
// Only the text is stored. Element records are derived state and are parsed
// again from the latest dump on every run. Identical dumps are deduplicated by
// sha256 digest, and Prune keeps a bounded history. AcquireRefreshLock guards
// the refresh path with an advisory file lock.
package snapshot
