// Package store defines the persistence contract for locally written
// catalog records. Implementations live under internal/platform: a postgres
// document store for production and an in-memory store for tests and
// single-process runs.
package store
