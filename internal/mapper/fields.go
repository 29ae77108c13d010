package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/marvel-api/internal/domain"
)

// record is a decoded upstream object with its fields left raw.
type record map[string]json.RawMessage

func decodeRecord(raw json.RawMessage) (record, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: null record", domain.ErrMalformedRecord)
	}
	return r, nil
}

// text returns the field as text: strings as-is, null as "null", any other
// value as its compact JSON form, and "" when the field is missing.
func (r record) text(field string) string {
	raw, ok := r[field]
	if !ok {
		return ""
	}
	return rawText(raw)
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}

// object returns the nested object stored under field, or nil.
func (r record) object(field string) record {
	raw, ok := r[field]
	if !ok {
		return nil
	}
	var nested record
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	return nested
}

// thumbnail joins thumbnail.path and thumbnail.extension.
func (r record) thumbnail() *string {
	image := r.object("thumbnail")
	if image == nil {
		return nil
	}
	url := image.text("path") + "." + image.text("extension")
	return &url
}
