package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a string field that also accepts JSON numbers and booleans,
// keeping their literal text. JSON null leaves the value empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("%w: expected a scalar, got %s", ErrValidation, string(data[:1]))
	default:
		if !json.Valid(data) {
			return fmt.Errorf("%w: invalid scalar %q", ErrValidation, string(data))
		}
		*t = Text(data)
		return nil
	}
}

// String returns the text value.
func (t Text) String() string {
	return string(t)
}
