// Package testdb provides helpers for integration tests that need a real
// postgres database. Tests using it are skipped unless a database URL is set
// in the environment.
package testdb
