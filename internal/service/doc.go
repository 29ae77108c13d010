// Package service implements the catalog operations behind the HTTP API.
//
// Reads (list, get, related) are answered by the upstream Marvel API and are
// never persisted. Writes (add, update, delete) go to the local document
// store after caching the record's thumbnail. A single generic
// CatalogService serves both characters and comics; Kind supplies the
// per-kind paths and mapping functions.
package service
