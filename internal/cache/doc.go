// Package cache provides a file-based TTL cache for debate perspective
// responses.
//
// Entries are keyed by a SHA-256 hash of the prompt text and the reviewed
// file's content hash, so the same prompt against a modified file is an
// independent cache line. Each entry stores an opaque JSON payload along with
// a creation timestamp and TTL. Reads return only entries that are still
// within their TTL; stale entries are left in place until ClearExpired runs.
// A corrupted entry file is treated as a miss everywhere, never as an error.
//
// HashFileContent produces a fixed 16-character content digest for cache
// invalidation. When the file cannot be read it returns a time-derived
// 16-character value instead of failing, which callers treat as a soft
// invalidation signal.
//
// The default cache directory is $XDG_CACHE_HOME/arbiter (or the
// OS-appropriate equivalent).
package cache
