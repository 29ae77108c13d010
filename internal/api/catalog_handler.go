package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/marvel-api/internal/api/shared"
	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/marvel"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
)

// Catalog is the service behind a CatalogHandler: reads of kind E, related
// reads of kind X and writes from request R.
type Catalog[E any, R any, X any] interface {
	List(ctx context.Context, filter marvel.Filter) ([]E, error)
	Get(ctx context.Context, id string) (*E, error)
	Related(ctx context.Context, id string, filter marvel.Filter) ([]X, error)
	Add(ctx context.Context, req R) (*E, error)
	Update(ctx context.Context, id string, req R) (*E, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CatalogHandler handles the HTTP endpoints of one catalog resource.
type CatalogHandler[E any, R any, X any] struct {
	service       Catalog[E, R, X]
	listFilter    FilterParser
	relatedFilter FilterParser
	logger        *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler. listFilter parses the query of
// the collection endpoint and relatedFilter that of the related endpoint.
func NewCatalogHandler[E any, R any, X any](
	svc Catalog[E, R, X],
	listFilter, relatedFilter FilterParser,
	l *slog.Logger,
) *CatalogHandler[E, R, X] {
	if l == nil {
		l = slog.Default()
	}
	return &CatalogHandler[E, R, X]{
		service:       svc,
		listFilter:    listFilter,
		relatedFilter: relatedFilter,
		logger:        l.With(slog.String("component", "catalog_handler")),
	}
}

// NewCharacterHandler serves /characters; its related endpoint lists comics.
func NewCharacterHandler(
	svc Catalog[domain.Character, domain.CharacterRequest, domain.Comic],
	l *slog.Logger,
) *CatalogHandler[domain.Character, domain.CharacterRequest, domain.Comic] {
	return NewCatalogHandler(svc, ParseCharacterFilter, ParseComicFilter, l)
}

// NewComicHandler serves /comics; its related endpoint lists characters.
func NewComicHandler(
	svc Catalog[domain.Comic, domain.ComicRequest, domain.Character],
	l *slog.Logger,
) *CatalogHandler[domain.Comic, domain.ComicRequest, domain.Character] {
	return NewCatalogHandler(svc, ParseComicFilter, ParseCharacterFilter, l)
}

// Routes registers the resource endpoints on r, which is expected to be
// mounted at the resource path. related names the sub-collection, e.g.
// "comics" for /characters/{id}/comics.
func (h *CatalogHandler[E, R, X]) Routes(r chi.Router, related string) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/"+related, h.Related)
}

// List handles GET on the collection.
// Responds 400 when the upstream gave no answer and 404 when it found nothing.
func (h *CatalogHandler[E, R, X]) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.listFilter(r.URL.Query())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid query parameter", err)
		return
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithList(w, r, items)
}

// Get handles GET on a single record.
func (h *CatalogHandler[E, R, X]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Related handles GET on the related sub-collection, with the same status
// policy as List.
func (h *CatalogHandler[E, R, X]) Related(w http.ResponseWriter, r *http.Request) {
	filter, err := h.relatedFilter(r.URL.Query())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid query parameter", err)
		return
	}

	items, err := h.service.Related(r.Context(), chi.URLParam(r, "id"), filter)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithList(w, r, items)
}

// Add handles POST on the collection. Any failure responds 400.
func (h *CatalogHandler[E, R, X]) Add(w http.ResponseWriter, r *http.Request) {
	var req R
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	item, err := h.service.Add(r.Context(), req)
	if err != nil {
		h.respondWithWriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Update handles PUT on a single record. Any failure, including an unknown
// id, responds 400.
func (h *CatalogHandler[E, R, X]) Update(w http.ResponseWriter, r *http.Request) {
	var req R
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondWithWriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Delete handles DELETE on a single record. The body is a bare boolean:
// true when the record was removed, false otherwise.
func (h *CatalogHandler[E, R, X]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("delete failed",
			slog.String("id", id),
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, false)
		return
	}
	if !deleted {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, false)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, true)
}

func respondWithList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	switch {
	case items == nil:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Upstream request failed")
	case len(items) == 0:
		shared.RespondWithError(w, r, http.StatusNotFound, "No records found")
	default:
		shared.RespondWithJSON(w, r, http.StatusOK, items)
	}
}

func (h *CatalogHandler[E, R, X]) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// respondWithWriteError answers every failed write with 400 and the
// sanitized message of the underlying error.
func (h *CatalogHandler[E, R, X]) respondWithWriteError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
}
