package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/store"
)

// DocumentStore is a concurrency-safe map of JSON documents keyed by id.
type DocumentStore[T store.Entity] struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	entity string
}

// NewDocumentStore creates an empty DocumentStore. entity names the kind in
// error messages.
func NewDocumentStore[T store.Entity](entity string) *DocumentStore[T] {
	return &DocumentStore[T]{
		docs:   make(map[string][]byte),
		entity: entity,
	}
}

// NewCharacterStore creates an empty character store.
func NewCharacterStore() *DocumentStore[domain.Character] {
	return NewDocumentStore[domain.Character]("character")
}

// NewComicStore creates an empty comic store.
func NewComicStore() *DocumentStore[domain.Comic] {
	return NewDocumentStore[domain.Comic]("comic")
}

var (
	_ store.Repository[domain.Character] = (*DocumentStore[domain.Character])(nil)
	_ store.Repository[domain.Comic]     = (*DocumentStore[domain.Comic])(nil)
)

// FindByID implements store.Repository.
func (s *DocumentStore[T]) FindByID(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.NewStoreError(s.entity, "find", "not found", store.NotFoundFor(s.entity))
	}

	var entity T
	if err := json.Unmarshal(doc, &entity); err != nil {
		return nil, store.NewStoreError(s.entity, "find", "corrupt document", err)
	}
	return &entity, nil
}

// Save implements store.Repository.
func (s *DocumentStore[T]) Save(_ context.Context, entity *T) error {
	if entity == nil {
		return store.NewStoreError(s.entity, "save", "nil entity", store.ErrInvalidEntity)
	}
	id := (*entity).Key()
	if id == "" {
		return store.NewStoreError(s.entity, "save", "empty id", fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyID))
	}

	doc, err := json.Marshal(entity)
	if err != nil {
		return store.NewStoreError(s.entity, "save", "encode failed", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	s.docs[id] = doc
	s.mu.Unlock()
	return nil
}

// DeleteByID implements store.Repository.
func (s *DocumentStore[T]) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return store.NewStoreError(s.entity, "delete", "not found", store.NotFoundFor(s.entity))
	}
	delete(s.docs, id)
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
