// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each entity kind lives in its own table as a JSONB document
// keyed by id. The schema is embedded and applied with goose.
package postgres
