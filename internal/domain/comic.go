package domain

import "time"

// Comic is a Marvel comic issue. Series is the name of the parent series,
// flattened from the upstream summary object.
type Comic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Modified    time.Time `json:"modified"`
	Format      string    `json:"format"`
	PageCount   string    `json:"pageCount"`
	ResourceURI string    `json:"resourceURI"`
	Series      string    `json:"series"`
	Thumbnail   *string   `json:"thumbnail"`
}

// Key returns the document key of the comic.
func (c Comic) Key() string {
	return c.ID
}

// SetThumbnail replaces the thumbnail location.
func (c *Comic) SetThumbnail(location *string) {
	c.Thumbnail = location
}

// ComicRequest is the payload accepted when creating or replacing a comic.
type ComicRequest struct {
	ID          Text   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Modified    string `json:"modified"`
	Format      string `json:"format"`
	PageCount   Text   `json:"pageCount"`
	ResourceURI string `json:"resourceURI"`
	Series      string `json:"series"`
	Thumbnail   string `json:"thumbnail"`
}

// RequestID returns the caller-supplied id.
func (r ComicRequest) RequestID() string {
	return string(r.ID)
}

// ThumbnailURL returns the image URL to cache for this request.
func (r ComicRequest) ThumbnailURL() string {
	return r.Thumbnail
}

// WithID returns a copy of the request carrying the given id.
func (r ComicRequest) WithID(id string) ComicRequest {
	r.ID = Text(id)
	return r
}
