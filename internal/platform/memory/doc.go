// Package memory provides an in-process implementation of store.Repository.
// Documents are kept as JSON so that callers never share memory with the
// store, matching the copy semantics of the postgres implementation.
package memory
