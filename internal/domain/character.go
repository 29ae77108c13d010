package domain

import "time"

// Character is a Marvel character, either mapped from an upstream result or
// stored locally from a write request.
type Character struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Modified    time.Time `json:"modified"`
	ResourceURI string    `json:"resourceURI"`

	// Thumbnail is the upstream image URL for transient records and the
	// cached image location for stored ones. Nil when there is no image.
	Thumbnail *string `json:"thumbnail"`
}

// Key returns the document key of the character.
func (c Character) Key() string {
	return c.ID
}

// SetThumbnail replaces the thumbnail location.
func (c *Character) SetThumbnail(location *string) {
	c.Thumbnail = location
}

// CharacterRequest is the payload accepted when creating or replacing a
// character. The id is taken as supplied by the caller; an empty id is
// replaced by a generated one when the record is created.
type CharacterRequest struct {
	ID          Text   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Modified    string `json:"modified"`
	ResourceURI string `json:"resourceURI"`
	Thumbnail   string `json:"thumbnail"`
}

// RequestID returns the caller-supplied id.
func (r CharacterRequest) RequestID() string {
	return string(r.ID)
}

// ThumbnailURL returns the image URL to cache for this request.
func (r CharacterRequest) ThumbnailURL() string {
	return r.Thumbnail
}

// WithID returns a copy of the request carrying the given id.
func (r CharacterRequest) WithID(id string) CharacterRequest {
	r.ID = Text(id)
	return r
}
