package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/phrazzld/marvel-api/internal/marvel"
)

// Pagination defaults applied when the client omits limit or offset.
const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

// ErrInvalidQuery is returned for query parameters that cannot be parsed.
var ErrInvalidQuery = errors.New("invalid query parameter")

// FilterParser builds an upstream filter from request query parameters.
type FilterParser func(q url.Values) (marvel.Filter, error)

// ParseCharacterFilter reads name, nameStartsWith, orderBy, limit and offset.
func ParseCharacterFilter(q url.Values) (marvel.Filter, error) {
	page, err := parsePage(q)
	if err != nil {
		return nil, err
	}
	return marvel.CharacterFilter{
		Name:           q.Get("name"),
		NameStartsWith: q.Get("nameStartsWith"),
		Page:           page,
	}, nil
}

// ParseComicFilter reads format, title, titleStartsWith, orderBy, limit and
// offset.
func ParseComicFilter(q url.Values) (marvel.Filter, error) {
	page, err := parsePage(q)
	if err != nil {
		return nil, err
	}
	return marvel.ComicFilter{
		Format:          q.Get("format"),
		Title:           q.Get("title"),
		TitleStartsWith: q.Get("titleStartsWith"),
		Page:            page,
	}, nil
}

func parsePage(q url.Values) (marvel.Page, error) {
	limit, err := intParam(q, "limit", DefaultLimit)
	if err != nil {
		return marvel.Page{}, err
	}
	offset, err := intParam(q, "offset", DefaultOffset)
	if err != nil {
		return marvel.Page{}, err
	}
	return marvel.Page{OrderBy: q.Get("orderBy"), Limit: limit, Offset: offset}, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, name)
	}
	return n, nil
}
