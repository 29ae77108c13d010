package mapper

import "time"

// ModifiedLayout is the timestamp layout used by the upstream API,
// e.g. 2014-04-29T14:18:17-0400.
const ModifiedLayout = "2006-01-02T15:04:05-0700"

// ParseModified parses raw with ModifiedLayout. When raw cannot be parsed it
// returns now() and false. Upstream placeholders for unknown dates, such as
// -0001-11-30T00:00:00-0500, always fall back.
func ParseModified(raw string, now func() time.Time) (time.Time, bool) {
	t, err := time.Parse(ModifiedLayout, raw)
	if err != nil {
		return now().UTC(), false
	}
	return t.UTC(), true
}
