package schedule

import (
	"math"
	"time"
)

// Date layouts accepted on source records. Date-typed storage columns come
// back as bare "2006-01-02" strings; rows written before the schema cleanup
// may still carry a full timestamp.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDate parses an ISO date or date-time string. A bare date parses as
// UTC midnight, which is how date-only columns round-trip from storage.
// The boolean is false for empty or malformed input; callers must treat
// such values per the exclude-on-ambiguity policy, never as zero time.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// localMidnight truncates t to 00:00:00 local time.
func localMidnight(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// daysBetween returns the whole-day difference a - b. Both operands are
// truncated to local midnight first; rounding absorbs the odd hour a DST
// transition inserts into the interval.
func daysBetween(a, b time.Time) int {
	diff := localMidnight(a).Sub(localMidnight(b))
	return int(math.Round(diff.Hours() / 24))
}
