package decoder

import (
	"time"
)

// TimeRFC3339 decodes RFC3339 strings into time.Time. Fractional seconds are
// accepted.
var TimeRFC3339 = Parse(String, func(v any) (any, error) {
	return parseRFC3339(v.(string))
}, "RFC3339")

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatRFC3339 is the canonical wire form accepted by TimeRFC3339: UTC with
// trailing zeros of the fraction trimmed.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
