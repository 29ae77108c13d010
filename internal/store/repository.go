package store

import "context"

// Entity is a document keyed by its id.
type Entity interface {
	Key() string
}

// Repository stores documents of a single kind by id.
type Repository[T Entity] interface {
	// FindByID returns the document with the given id.
	// Returns ErrNotFound if no such document exists.
	FindByID(ctx context.Context, id string) (*T, error)

	// Save creates the document or replaces the one with the same id.
	// Returns ErrInvalidEntity if the document has an empty id.
	Save(ctx context.Context, entity *T) error

	// DeleteByID removes the document with the given id.
	// Returns ErrNotFound if no such document exists.
	DeleteByID(ctx context.Context, id string) error
}
