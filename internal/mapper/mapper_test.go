package mapper

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*events.DegradationEvent
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.DegradationEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) kinds() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	kinds := make([]string, 0, len(h.events))
	for _, e := range h.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newTestMapper() (*Mapper, *recordingHandler) {
	emitter := events.NewInMemoryEventEmitter(nil)
	handler := &recordingHandler{}
	emitter.RegisterHandler(handler)
	return New(emitter, nil), handler
}

const hulk = `{
	"id": 1009351,
	"name": "Hulk",
	"description": "Caught in a gamma bomb explosion",
	"modified": "2020-07-21T10:35:15-0400",
	"thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/5/a0/538615ca33ab0", "extension": "jpg"},
	"resourceURI": "http://gateway.marvel.com/v1/public/characters/1009351",
	"comics": {"available": 1702}
}`

const handbook = `{
	"id": 1886,
	"title": "Official Handbook of the Marvel Universe (2004) #12 (SPIDER-MAN)",
	"description": null,
	"modified": "-0001-11-30T00:00:00-0500",
	"format": "Comic",
	"pageCount": 0,
	"resourceURI": "http://gateway.marvel.com/v1/public/comics/1886",
	"series": {"resourceURI": "http://gateway.marvel.com/v1/public/series/1628", "name": "Official Handbook of the Marvel Universe (2004)"},
	"thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available", "extension": "jpg"}
}`

func TestParseModified(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("valid", func(t *testing.T) {
		got, ok := ParseModified("2014-04-29T14:18:17-0400", clock)
		assert.True(t, ok)
		assert.True(t, got.Equal(time.Date(2014, 4, 29, 18, 18, 17, 0, time.UTC)))
	})

	for _, raw := range []string{"", "-0001-11-30T00:00:00-0500", "2014-04-29", "2014-04-29T14:18:17Z", "null"} {
		t.Run("fallback "+raw, func(t *testing.T) {
			got, ok := ParseModified(raw, clock)
			assert.False(t, ok)
			assert.Equal(t, now, got)
		})
	}

	t.Run("bce date uses current time", func(t *testing.T) {
		start := time.Now()
		got, ok := ParseModified("-0001-11-30T00:00:00-0500", time.Now)
		assert.False(t, ok)
		assert.False(t, got.Before(start))
	})
}

func TestMapperCharacter(t *testing.T) {
	m, h := newTestMapper()

	c, err := m.Character(context.Background(), json.RawMessage(hulk))
	require.NoError(t, err)

	assert.Equal(t, "1009351", c.ID)
	assert.Equal(t, "Hulk", c.Name)
	assert.Equal(t, "Caught in a gamma bomb explosion", c.Description)
	assert.Equal(t, "http://gateway.marvel.com/v1/public/characters/1009351", c.ResourceURI)
	require.NotNil(t, c.Thumbnail)
	assert.Equal(t, "http://i.annihil.us/u/prod/marvel/i/mg/5/a0/538615ca33ab0.jpg", *c.Thumbnail)
	assert.True(t, c.Modified.Equal(time.Date(2020, 7, 21, 14, 35, 15, 0, time.UTC)))
	assert.Empty(t, h.kinds())
}

func TestMapperComic(t *testing.T) {
	m, h := newTestMapper()
	start := time.Now().UTC()

	c, err := m.Comic(context.Background(), json.RawMessage(handbook))
	require.NoError(t, err)

	assert.Equal(t, "1886", c.ID)
	assert.Equal(t, "null", c.Description)
	assert.Equal(t, "Comic", c.Format)
	assert.Equal(t, "0", c.PageCount)
	assert.Equal(t, "Official Handbook of the Marvel Universe (2004)", c.Series)
	require.NotNil(t, c.Thumbnail)
	assert.Equal(t, "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available.jpg", *c.Thumbnail)
	assert.False(t, c.Modified.Before(start), "BCE modified should fall back to the current time")
	assert.Equal(t, []string{events.KindModifiedFallback}, h.kinds())
}

func TestMapperMissingFields(t *testing.T) {
	m, _ := newTestMapper()

	c, err := m.Comic(context.Background(), json.RawMessage(`{"id":"7"}`))
	require.NoError(t, err)

	assert.Equal(t, "7", c.ID)
	assert.Empty(t, c.Title)
	assert.Empty(t, c.Series)
	assert.Nil(t, c.Thumbnail)
}

func TestMapperMalformedRecord(t *testing.T) {
	m, _ := newTestMapper()

	for _, raw := range []string{`[]`, `"hulk"`, `null`, `{`} {
		_, err := m.Character(context.Background(), json.RawMessage(raw))
		assert.ErrorIs(t, err, domain.ErrMalformedRecord, "raw=%s", raw)
	}
}

func TestMapperLists(t *testing.T) {
	m, h := newTestMapper()
	ctx := context.Background()

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, m.Characters(ctx, nil))
		assert.Nil(t, m.Comics(ctx, nil))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		chars := m.Characters(ctx, []json.RawMessage{})
		assert.NotNil(t, chars)
		assert.Empty(t, chars)
	})

	t.Run("malformed records skipped", func(t *testing.T) {
		chars := m.Characters(ctx, []json.RawMessage{json.RawMessage(hulk), json.RawMessage(`42`)})
		require.Len(t, chars, 1)
		assert.Equal(t, "Hulk", chars[0].Name)
		assert.Contains(t, h.kinds(), events.KindRecordSkipped)
	})
}

func TestApplyRequests(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	m, h := newTestMapper()
	m = m.WithClock(func() time.Time { return now })
	ctx := context.Background()

	t.Run("character full overwrite", func(t *testing.T) {
		thumb := "images/hulk.jpg"
		c := domain.Character{ID: "1", Name: "Old", Description: "Old", ResourceURI: "old", Thumbnail: &thumb}

		m.ApplyCharacterRequest(ctx, &c, domain.CharacterRequest{
			ID:       "1",
			Name:     "Hulk",
			Modified: "2020-07-21T10:35:15-0400",
		})

		assert.Equal(t, "Hulk", c.Name)
		assert.Empty(t, c.Description)
		assert.Empty(t, c.ResourceURI)
		assert.Equal(t, &thumb, c.Thumbnail, "thumbnail is left to the image cache")
		assert.True(t, c.Modified.Equal(time.Date(2020, 7, 21, 14, 35, 15, 0, time.UTC)))
	})

	t.Run("comic with fallback date", func(t *testing.T) {
		var c domain.Comic
		m.ApplyComicRequest(ctx, &c, domain.ComicRequest{
			ID:        "1",
			Title:     "X",
			PageCount: "32",
			Series:    "X-Men",
		})

		assert.Equal(t, "1", c.ID)
		assert.Equal(t, "X", c.Title)
		assert.Equal(t, "32", c.PageCount)
		assert.Equal(t, "X-Men", c.Series)
		assert.Equal(t, now, c.Modified)
		assert.Contains(t, h.kinds(), events.KindModifiedFallback)
	})
}
