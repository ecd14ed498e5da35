// Package schedule holds the deterministic core of the ledger: turning
// abstract income/expense/subscription sources into dated occurrences for a
// calendar month, and ranking credit cards by billing-cycle advantage.
//
// Everything here is a pure function over in-memory snapshots. The package
// never touches the database, the router, or the ambient clock; callers
// load the inputs and pass "today" explicitly.
package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind discriminates how a source produces occurrences.
type SourceKind string

const (
	KindOneTime   SourceKind = "one-time"
	KindRecurring SourceKind = "recurring"
)

// Source is a snapshot of a stored income, expense, or subscription
// definition, already decoded from its storage row. Date fields are kept as
// the raw strings the date columns return: a malformed or empty string is
// meaningful input here (see Materialize), so parsing is deferred.
type Source struct {
	ID         uint
	Kind       SourceKind
	Amount     decimal.Decimal
	Date       string // one-time date, or fallback recurrence anchor
	StartDate  string // authoritative recurrence anchor
	DayOfMonth int    // 1-31; 0 means derive from the anchor date
	EndDate    string // last month to produce an instance for; "" = open-ended
}

// ViewMonth identifies the calendar month occurrences are materialized for.
type ViewMonth struct {
	Year  int
	Month time.Month
}

// Occurrence is one concrete dated instance of a Source inside a view month.
type Occurrence struct {
	Source
	Date      time.Time
	IsDone    bool
	Recurring bool
}

// TrackerKey builds the completion-tracker key for a source in a view month.
// The legacy system persisted keys with a zero-based month index, so the
// format is frozen: stored keys must keep round-tripping.
func TrackerKey(sourceID uint, month ViewMonth) string {
	return fmt.Sprintf("%d_%d_%d", sourceID, int(month.Month)-1, month.Year)
}

// Materialize returns the occurrences the given sources produce in the view
// month, sorted ascending by date. Doneness comes from the tracker map keyed
// by TrackerKey; a missing entry means not done.
//
// One-time sources match on the UTC month and year of their date. Date-only
// storage truncates a local-midnight timestamp into the previous UTC day, so
// UTC component extraction is what keeps those rows in their intended month
// bucket.
//
// Recurring sources produce exactly one candidate per month: the local date
// (view year, view month, due day), where the due day is DayOfMonth when set
// and otherwise the anchor date's local day of month. A due day past the end
// of the month rolls into the next month, same as a date constructor would;
// it is deliberately not clamped. The candidate must fall on or after the
// start anchor, and on or before the end date widened by one day to
// end-of-day (the widening recovers the last day a date-only end column
// loses to UTC truncation). A malformed start anchor excludes the source; a
// malformed end date merely removes the end bound, mirroring how the
// reference comparisons degrade.
func Materialize(sources []Source, tracker map[string]bool, month ViewMonth) []Occurrence {
	out := make([]Occurrence, 0, len(sources))

	for _, src := range sources {
		switch src.Kind {
		case KindOneTime:
			t, ok := parseDate(src.Date)
			if !ok {
				continue
			}
			u := t.UTC()
			if u.Year() != month.Year || u.Month() != month.Month {
				continue
			}
			out = append(out, Occurrence{
				Source:    src,
				Date:      t,
				IsDone:    tracker[TrackerKey(src.ID, month)],
				Recurring: false,
			})

		case KindRecurring:
			anchorStr := src.StartDate
			if anchorStr == "" {
				anchorStr = src.Date
			}
			anchor, ok := parseDate(anchorStr)
			if !ok {
				// Comparing against an unparsable anchor can never
				// satisfy the start bound, so the source is excluded.
				continue
			}

			dueDay := src.DayOfMonth
			if dueDay == 0 {
				dueDay = anchor.Local().Day()
			}

			// time.Date normalizes an overflowing day into the next
			// month; that rollover is required behavior.
			candidate := time.Date(month.Year, month.Month, dueDay, 0, 0, 0, 0, time.Local)

			if candidate.Before(localMidnight(anchor)) {
				continue
			}
			if src.EndDate != "" {
				if end, ok := parseDate(src.EndDate); ok {
					e := end.Local()
					endCompare := time.Date(e.Year(), e.Month(), e.Day()+1, 23, 59, 59, 999_000_000, time.Local)
					if candidate.After(endCompare) {
						continue
					}
				}
				// Malformed end date: the bound never fires.
			}

			out = append(out, Occurrence{
				Source:    src,
				Date:      candidate,
				IsDone:    tracker[TrackerKey(src.ID, month)],
				Recurring: true,
			})

		default:
			// Unknown kinds produce nothing; not an error.
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
