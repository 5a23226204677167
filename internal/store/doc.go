// Package store persists the product catalog, the change log and the
// usage counter.
//
// Two implementations share one contract: Store is SQLite-backed with
// WAL journaling and schema migrations via PRAGMA user_version, and
// MemoryStore holds everything in process for ad-hoc runs and tests.
// Both return defensive copies; callers mutate freely and write back
// with SaveProduct.
package store
