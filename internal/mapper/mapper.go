package mapper

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/events"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
)

const (
	entityCharacter = "character"
	entityComic     = "comic"
)

// Mapper builds domain entities from upstream records and write requests.
type Mapper struct {
	emitter events.EventEmitter
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Mapper. A nil emitter disables degradation events.
func New(emitter events.EventEmitter, l *slog.Logger) *Mapper {
	if l == nil {
		l = slog.Default()
	}
	return &Mapper{
		emitter: emitter,
		logger:  l.With(slog.String("component", "mapper")),
		now:     time.Now,
	}
}

// WithClock returns a copy of the mapper that reads time from now.
func (m *Mapper) WithClock(now func() time.Time) *Mapper {
	clone := *m
	clone.now = now
	return &clone
}

// Character maps a single upstream character record.
func (m *Mapper) Character(ctx context.Context, raw json.RawMessage) (domain.Character, error) {
	r, err := decodeRecord(raw)
	if err != nil {
		return domain.Character{}, err
	}

	c := domain.Character{
		ID:          r.text("id"),
		Name:        r.text("name"),
		Description: r.text("description"),
		ResourceURI: r.text("resourceURI"),
		Thumbnail:   r.thumbnail(),
	}
	c.Modified = m.modified(ctx, entityCharacter, c.ID, r.text("modified"))

	return c, nil
}

// Comic maps a single upstream comic record.
func (m *Mapper) Comic(ctx context.Context, raw json.RawMessage) (domain.Comic, error) {
	r, err := decodeRecord(raw)
	if err != nil {
		return domain.Comic{}, err
	}

	c := domain.Comic{
		ID:          r.text("id"),
		Title:       r.text("title"),
		Description: r.text("description"),
		Format:      r.text("format"),
		PageCount:   r.text("pageCount"),
		ResourceURI: r.text("resourceURI"),
		Thumbnail:   r.thumbnail(),
	}
	if series := r.object("series"); series != nil {
		c.Series = series.text("name")
	}
	c.Modified = m.modified(ctx, entityComic, c.ID, r.text("modified"))

	return c, nil
}

// Characters maps a result list. Nil input yields nil so that an absent
// upstream answer stays distinguishable from an empty one.
func (m *Mapper) Characters(ctx context.Context, results []json.RawMessage) []domain.Character {
	return mapAll(ctx, m, entityCharacter, results, m.Character)
}

// Comics maps a result list with the same nil handling as Characters.
func (m *Mapper) Comics(ctx context.Context, results []json.RawMessage) []domain.Comic {
	return mapAll(ctx, m, entityComic, results, m.Comic)
}

// ApplyCharacterRequest overwrites every request-mapped field of c. The
// thumbnail is left to the image cache.
func (m *Mapper) ApplyCharacterRequest(ctx context.Context, c *domain.Character, req domain.CharacterRequest) {
	c.ID = req.RequestID()
	c.Name = req.Name
	c.Description = req.Description
	c.Modified = m.modified(ctx, entityCharacter, c.ID, req.Modified)
	c.ResourceURI = req.ResourceURI
}

// ApplyComicRequest overwrites every request-mapped field of c. The thumbnail
// is left to the image cache.
func (m *Mapper) ApplyComicRequest(ctx context.Context, c *domain.Comic, req domain.ComicRequest) {
	c.ID = req.RequestID()
	c.Title = req.Title
	c.Description = req.Description
	c.Modified = m.modified(ctx, entityComic, c.ID, req.Modified)
	c.Format = req.Format
	c.PageCount = req.PageCount.String()
	c.ResourceURI = req.ResourceURI
	c.Series = req.Series
}

func mapAll[E any](
	ctx context.Context,
	m *Mapper,
	entity string,
	results []json.RawMessage,
	one func(context.Context, json.RawMessage) (E, error),
) []E {
	if results == nil {
		return nil
	}
	out := make([]E, 0, len(results))
	for _, raw := range results {
		e, err := one(ctx, raw)
		if err != nil {
			m.emit(ctx, events.NewDegradationEvent(events.KindRecordSkipped, entity, "", string(raw), err))
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m *Mapper) modified(ctx context.Context, entity, id, raw string) time.Time {
	t, ok := ParseModified(raw, m.now)
	if !ok {
		m.emit(ctx, events.NewDegradationEvent(
			events.KindModifiedFallback, entity, id, raw, errUnparseableModified))
	}
	return t
}

func (m *Mapper) emit(ctx context.Context, event *events.DegradationEvent) {
	if m.emitter == nil {
		return
	}
	if err := m.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, m.logger).DebugContext(ctx, "failed to emit degradation event",
			slog.String("kind", event.Kind),
			slog.String("error", redact.Error(err)))
	}
}
