package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
	"github.com/phrazzld/marvel-api/internal/store"
)

// Document tables created by the embedded migrations.
const (
	CharactersTable = "characters"
	ComicsTable     = "comics"
)

var knownTables = map[string]string{
	CharactersTable: "character",
	ComicsTable:     "comic",
}

// DocumentStore implements store.Repository by keeping each entity as a
// JSONB document in a table with columns (id, doc, updated_at).
type DocumentStore[T store.Entity] struct {
	db     store.DBTX
	table  string
	entity string
	logger *slog.Logger
}

// NewDocumentStore creates a DocumentStore over one of the known tables.
// The table name is interpolated into SQL, so unknown names are rejected.
func NewDocumentStore[T store.Entity](db store.DBTX, table string, l *slog.Logger) (*DocumentStore[T], error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	entity, ok := knownTables[table]
	if !ok {
		return nil, fmt.Errorf("unknown document table %q", table)
	}
	if l == nil {
		l = slog.Default()
	}
	return &DocumentStore[T]{
		db:     db,
		table:  table,
		entity: entity,
		logger: l.With(slog.String("component", entity+"_store")),
	}, nil
}

// NewCharacterStore creates the document store for characters.
func NewCharacterStore(db store.DBTX, l *slog.Logger) (*DocumentStore[domain.Character], error) {
	return NewDocumentStore[domain.Character](db, CharactersTable, l)
}

// NewComicStore creates the document store for comics.
func NewComicStore(db store.DBTX, l *slog.Logger) (*DocumentStore[domain.Comic], error) {
	return NewDocumentStore[domain.Comic](db, ComicsTable, l)
}

var (
	_ store.Repository[domain.Character] = (*DocumentStore[domain.Character])(nil)
	_ store.Repository[domain.Comic]     = (*DocumentStore[domain.Comic])(nil)
)

// FindByID implements store.Repository.
func (s *DocumentStore[T]) FindByID(ctx context.Context, id string) (*T, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, s.table)

	var doc []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if IsNotFoundError(err) {
			return nil, store.NewStoreError(s.entity, "find", "not found", store.NotFoundFor(s.entity))
		}
		log.Error("failed to query document",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(s.entity, "find", "query failed", MapError(err))
	}

	var entity T
	if err := json.Unmarshal(doc, &entity); err != nil {
		return nil, store.NewStoreError(s.entity, "find", "corrupt document", err)
	}
	return &entity, nil
}

// Save implements store.Repository with an upsert on id.
func (s *DocumentStore[T]) Save(ctx context.Context, entity *T) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

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

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`, s.table)

	if _, err := s.db.ExecContext(ctx, query, id, doc); err != nil {
		log.Error("failed to save document",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError(s.entity, "save", "upsert failed", MapError(err))
	}

	log.Debug("document saved", slog.String("id", id))
	return nil
}

// DeleteByID implements store.Repository.
func (s *DocumentStore[T]) DeleteByID(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError(s.entity, "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, s.entity); err != nil {
		return store.NewStoreError(s.entity, "delete", "not found", err)
	}

	log.Debug("document deleted", slog.String("id", id))
	return nil
}
