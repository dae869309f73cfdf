package shared

import (
	"strings"
	"time"
)

// DateLayout is the wire format for date-only fields such as hireDate and
// the leave fromDate/toDate range.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only value. Full RFC3339 timestamps are accepted
// too so clients that send times instead of days keep working.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
