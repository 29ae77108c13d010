package service

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/mapper"
	"github.com/phrazzld/marvel-api/internal/marvel"
)

// Request is a write payload for entities of one kind.
type Request[R any] interface {
	RequestID() string
	ThumbnailURL() string
	WithID(id string) R
}

// Kind describes one catalog entity kind E, its write request R and the
// kind X returned by its related listing.
type Kind[E any, R any, X any] struct {
	// Name is used in logs and errors, e.g. "character".
	Name string

	ListPath    func() string
	ItemPath    func(id string) string
	RelatedPath func(id string) string

	MapList    func(ctx context.Context, results []json.RawMessage) []E
	MapRelated func(ctx context.Context, results []json.RawMessage) []X

	// Apply overwrites the request-mapped fields of an entity.
	Apply func(ctx context.Context, entity *E, req R)

	SetThumbnail func(entity *E, location *string)
}

// CharacterKind wires characters, whose related listing is comics.
func CharacterKind(m *mapper.Mapper) Kind[domain.Character, domain.CharacterRequest, domain.Comic] {
	return Kind[domain.Character, domain.CharacterRequest, domain.Comic]{
		Name:         "character",
		ListPath:     marvel.CharactersPath,
		ItemPath:     marvel.CharacterPath,
		RelatedPath:  marvel.CharacterComicsPath,
		MapList:      m.Characters,
		MapRelated:   m.Comics,
		Apply:        m.ApplyCharacterRequest,
		SetThumbnail: (*domain.Character).SetThumbnail,
	}
}

// ComicKind wires comics, whose related listing is characters.
func ComicKind(m *mapper.Mapper) Kind[domain.Comic, domain.ComicRequest, domain.Character] {
	return Kind[domain.Comic, domain.ComicRequest, domain.Character]{
		Name:         "comic",
		ListPath:     marvel.ComicsPath,
		ItemPath:     marvel.ComicPath,
		RelatedPath:  marvel.ComicCharactersPath,
		MapList:      m.Comics,
		MapRelated:   m.Characters,
		Apply:        m.ApplyComicRequest,
		SetThumbnail: (*domain.Comic).SetThumbnail,
	}
}
