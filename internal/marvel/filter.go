package marvel

import "strconv"

// Page carries the pagination window shared by every list query.
type Page struct {
	OrderBy string
	Limit   int
	Offset  int
}

func (p Page) params() Params {
	return Params{
		"orderBy": p.OrderBy,
		"limit":   strconv.Itoa(p.Limit),
		"offset":  strconv.Itoa(p.Offset),
	}
}

// CharacterFilter narrows a character listing.
type CharacterFilter struct {
	Name           string
	NameStartsWith string
	Page
}

// Params implements Filter.
func (f CharacterFilter) Params() Params {
	p := f.Page.params()
	p["name"] = f.Name
	p["nameStartsWith"] = f.NameStartsWith
	return p
}

// ComicFilter narrows a comic listing.
type ComicFilter struct {
	Format          string
	Title           string
	TitleStartsWith string
	Page
}

// Params implements Filter.
func (f ComicFilter) Params() Params {
	p := f.Page.params()
	p["format"] = f.Format
	p["title"] = f.Title
	p["titleStartsWith"] = f.TitleStartsWith
	return p
}
