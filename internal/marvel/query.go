package marvel

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Params are optional query parameters appended after the signature.
type Params map[string]string

// Filter is implemented by anything that can be expressed as query parameters.
type Filter interface {
	Params() Params
}

// QueryBuilder assembles signed upstream URLs.
type QueryBuilder struct {
	baseURL string
	signer  *Signer
	now     func() time.Time
}

// NewQueryBuilder creates a QueryBuilder for the given API base URL.
func NewQueryBuilder(baseURL string, signer *Signer) *QueryBuilder {
	return &QueryBuilder{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		now:     time.Now,
	}
}

// WithClock returns a copy of the builder that reads time from now.
func (b *QueryBuilder) WithClock(now func() time.Time) *QueryBuilder {
	clone := *b
	clone.now = now
	return &clone
}

// Build returns base + path + "?ts=..&apikey=..&hash=.." followed by every
// non-empty parameter in key order.
func (b *QueryBuilder) Build(path string, params Params) string {
	ts := strconv.FormatInt(b.now().UnixMilli(), 10)

	var sb strings.Builder
	sb.WriteString(b.baseURL)
	sb.WriteString(path)
	sb.WriteString("?ts=")
	sb.WriteString(ts)
	sb.WriteString("&apikey=")
	sb.WriteString(url.QueryEscape(b.signer.PublicKey()))
	sb.WriteString("&hash=")
	sb.WriteString(b.signer.Hash(ts))

	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteByte('&')
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}

	return sb.String()
}

// CharactersPath is the character collection.
func CharactersPath() string { return "/characters" }

// CharacterPath is a single character.
func CharacterPath(id string) string { return "/characters/" + url.PathEscape(id) }

// CharacterComicsPath lists the comics a character appears in.
func CharacterComicsPath(id string) string { return CharacterPath(id) + "/comics" }

// ComicsPath is the comic collection.
func ComicsPath() string { return "/comics" }

// ComicPath is a single comic.
func ComicPath(id string) string { return "/comics/" + url.PathEscape(id) }

// ComicCharactersPath lists the characters appearing in a comic.
func ComicCharactersPath(id string) string { return ComicPath(id) + "/characters" }
