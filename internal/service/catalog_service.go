package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/imagecache"
	"github.com/phrazzld/marvel-api/internal/mapper"
	"github.com/phrazzld/marvel-api/internal/marvel"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
	"github.com/phrazzld/marvel-api/internal/store"
)

// Upstream fetches a signed upstream URL. Nil results mean the upstream gave
// no usable answer.
type Upstream interface {
	Fetch(ctx context.Context, url string) (marvel.Results, error)
}

// QueryBuilder produces signed upstream URLs.
type QueryBuilder interface {
	Build(path string, params marvel.Params) string
}

// ImageCache stores thumbnails and reports where they were stored.
type ImageCache interface {
	Fetch(ctx context.Context, sourceURL string) imagecache.Result
}

// Dependencies are the collaborators shared by every catalog service.
type Dependencies struct {
	Upstream Upstream
	Queries  QueryBuilder
	Images   ImageCache
	Mapper   *mapper.Mapper
	Logger   *slog.Logger
}

// CatalogService implements the read and write operations for one kind.
type CatalogService[E store.Entity, R Request[R], X any] struct {
	kind     Kind[E, R, X]
	upstream Upstream
	queries  QueryBuilder
	images   ImageCache
	repo     store.Repository[E]
	logger   *slog.Logger
}

// CharacterService serves characters; its related listing returns comics.
type CharacterService = CatalogService[domain.Character, domain.CharacterRequest, domain.Comic]

// ComicService serves comics; its related listing returns characters.
type ComicService = CatalogService[domain.Comic, domain.ComicRequest, domain.Character]

// NewCatalogService creates a CatalogService.
// It returns an error if any of the required dependencies are nil.
func NewCatalogService[E store.Entity, R Request[R], X any](
	kind Kind[E, R, X],
	deps Dependencies,
	repo store.Repository[E],
) (*CatalogService[E, R, X], error) {
	switch {
	case deps.Upstream == nil:
		return nil, fmt.Errorf("%w: upstream cannot be nil", domain.ErrValidation)
	case deps.Queries == nil:
		return nil, fmt.Errorf("%w: query builder cannot be nil", domain.ErrValidation)
	case deps.Images == nil:
		return nil, fmt.Errorf("%w: image cache cannot be nil", domain.ErrValidation)
	case repo == nil:
		return nil, fmt.Errorf("%w: repository cannot be nil", domain.ErrValidation)
	}

	l := deps.Logger
	if l == nil {
		l = slog.Default()
	}

	return &CatalogService[E, R, X]{
		kind:     kind,
		upstream: deps.Upstream,
		queries:  deps.Queries,
		images:   deps.Images,
		repo:     repo,
		logger:   l.With(slog.String("component", kind.Name+"_service")),
	}, nil
}

// NewCharacterService creates the character service.
func NewCharacterService(deps Dependencies, repo store.Repository[domain.Character]) (*CharacterService, error) {
	if deps.Mapper == nil {
		return nil, fmt.Errorf("%w: mapper cannot be nil", domain.ErrValidation)
	}
	return NewCatalogService(CharacterKind(deps.Mapper), deps, repo)
}

// NewComicService creates the comic service.
func NewComicService(deps Dependencies, repo store.Repository[domain.Comic]) (*ComicService, error) {
	if deps.Mapper == nil {
		return nil, fmt.Errorf("%w: mapper cannot be nil", domain.ErrValidation)
	}
	return NewCatalogService(ComicKind(deps.Mapper), deps, repo)
}

// List returns the upstream listing for filter. A nil slice means the
// upstream gave no usable answer; an empty slice means it found nothing.
func (s *CatalogService[E, R, X]) List(ctx context.Context, filter marvel.Filter) ([]E, error) {
	results, err := s.fetch(ctx, "list", s.kind.ListPath(), filter)
	if err != nil {
		return nil, err
	}
	return s.kind.MapList(ctx, results), nil
}

// Get returns a single record. The upstream answer wins; a locally written
// record with the same id is returned only when the upstream has none.
// Returns ErrNotFound when neither has the record.
func (s *CatalogService[E, R, X]) Get(ctx context.Context, id string) (*E, error) {
	results, err := s.fetch(ctx, "get", s.kind.ItemPath(id), nil)
	if err != nil {
		return nil, err
	}

	if items := s.kind.MapList(ctx, results); len(items) > 0 {
		return &items[0], nil
	}

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError(s.kind.Name, "get", "no upstream or stored record", ErrNotFound)
		}
		return nil, NewServiceError(s.kind.Name, "get", "failed to load stored record", err)
	}
	return stored, nil
}

// Related returns the records of the other kind linked to id, with the same
// nil and empty convention as List.
func (s *CatalogService[E, R, X]) Related(ctx context.Context, id string, filter marvel.Filter) ([]X, error) {
	results, err := s.fetch(ctx, "related", s.kind.RelatedPath(id), filter)
	if err != nil {
		return nil, err
	}
	return s.kind.MapRelated(ctx, results), nil
}

// Add stores a new record built from req and returns the stored copy.
// The caller-supplied id is used as is, and an existing record with the same
// id is replaced. A request without an id gets a generated one.
func (s *CatalogService[E, R, X]) Add(ctx context.Context, req R) (*E, error) {
	if req.RequestID() == "" {
		req = req.WithID(uuid.NewString())
	}

	var entity E
	s.kind.Apply(ctx, &entity, req)

	return s.writeThenGet(ctx, "add", &entity, req)
}

// Update overwrites the stored record id with req and returns the stored
// copy. Returns ErrNotFound, without writing anything, if id is not stored.
// An empty request id means id.
func (s *CatalogService[E, R, X]) Update(ctx context.Context, id string, req R) (*E, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError(s.kind.Name, "update", "record not stored", ErrNotFound)
		}
		log.ErrorContext(ctx, "failed to load record for update",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(s.kind.Name, "update", "failed to load record", err)
	}

	if req.RequestID() == "" {
		req = req.WithID(id)
	}
	if req.RequestID() != id {
		log.InfoContext(ctx, "update writes record under a new id",
			slog.String("id", id),
			slog.String("new_id", req.RequestID()))
	}

	s.kind.Apply(ctx, entity, req)

	return s.writeThenGet(ctx, "update", entity, req)
}

// Delete removes the stored record id. It reports false, with a nil error,
// when there was nothing to remove.
func (s *CatalogService[E, R, X]) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return false, nil
		}
		return false, NewServiceError(s.kind.Name, "delete", "failed to load record", err)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return false, nil
		}
		log.ErrorContext(ctx, "failed to delete record",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		return false, NewServiceError(s.kind.Name, "delete", "failed to delete record", err)
	}

	log.InfoContext(ctx, "record deleted", slog.String("id", id))
	return true, nil
}

func (s *CatalogService[E, R, X]) fetch(ctx context.Context, operation, path string, filter marvel.Filter) (marvel.Results, error) {
	var params marvel.Params
	if filter != nil {
		params = filter.Params()
	}

	results, err := s.upstream.Fetch(ctx, s.queries.Build(path, params))
	if err != nil {
		return nil, NewServiceError(s.kind.Name, operation, "upstream request aborted", err)
	}
	return results, nil
}

// writeThenGet caches the thumbnail, saves the entity and reads it back.
func (s *CatalogService[E, R, X]) writeThenGet(ctx context.Context, operation string, entity *E, req R) (*E, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	image := s.images.Fetch(ctx, req.ThumbnailURL())
	if image.Degraded {
		log.WarnContext(ctx, "storing record without thumbnail",
			slog.String("id", (*entity).Key()),
			slog.String("error", redact.Error(image.Err)))
	}
	s.kind.SetThumbnail(entity, image.Path)

	if err := s.repo.Save(ctx, entity); err != nil {
		log.ErrorContext(ctx, "failed to save record",
			slog.String("id", (*entity).Key()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(s.kind.Name, operation, "failed to save record", err)
	}

	stored, err := s.repo.FindByID(ctx, (*entity).Key())
	if err != nil {
		return nil, NewServiceError(s.kind.Name, operation, "failed to read back record", err)
	}

	log.InfoContext(ctx, "record stored", slog.String("id", (*entity).Key()))
	return stored, nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
