package leave

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - day-granularity time point (the calendar works in whole days)
// =============================================================================

// Day is a calendar date normalized to midnight UTC. Stored timestamps
// may carry a time-of-day component; normalizing before any comparison
// avoids off-by-one exclusions at range boundaries.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// dayLayouts are tried in order when parsing raw date strings from the
// record source. Anything time-of-day is discarded after parsing.
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDay parses a raw date string at day granularity.
func ParseDay(s string) (Day, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return Day{}, fmt.Errorf("unparseable date %q", s)
}

// Comparison
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// Arithmetic
func (d Day) AddDays(n int) Day   { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) AddMonths(n int) Day { return Day{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b Day) int { return int(b.t.Sub(a.t).Hours() / 24) }

// =============================================================================
// WINDOW - inclusive day range
// =============================================================================

type Window struct {
	Start Day
	End   Day
}

// Contains implements the inclusive day-granularity membership test:
// Start <= d <= End.
func (w Window) Contains(d Day) bool { return InRange(d, w.Start, w.End) }

// InRange reports start <= d <= end, all at day granularity. Both
// bounds are inclusive.
func InRange(d, start, end Day) bool {
	return !d.Before(start) && !d.After(end)
}

// =============================================================================
// MONTH WINDOWS
// =============================================================================

// Month identifies a displayed year/month window.
type Month struct {
	Year  int
	Month time.Month
}

// Start returns the first day of the month.
func (m Month) Start() Day { return NewDay(m.Year, m.Month, 1) }

// NextStart returns the first day of the following month: the exclusive
// upper bound of the half-open month window.
func (m Month) NextStart() Day { return m.Start().AddMonths(1) }

// End returns the last day of the month.
func (m Month) End() Day { return m.NextStart().AddDays(-1) }

// Overlaps implements the half-open month overlap test used by the
// monthly summary: start < nextMonthStart AND end >= monthStart. A span
// crossing the month boundary is counted in both adjacent months; this
// test is intentionally distinct from the inclusive-day Contains used
// for calendar cells.
func (m Month) Overlaps(w Window) bool {
	return w.Start.Before(m.NextStart()) && !w.End.Before(m.Start())
}

// =============================================================================
// CALENDAR GRID
// =============================================================================

// MonthGrid builds the week-aligned matrix of the displayed month,
// Monday first. Leading and trailing cells outside the month are the
// zero Day; they map to no records in the calendar index.
func MonthGrid(m Month) [][]Day {
	first := m.Start()
	// Monday = 0 ... Sunday = 6
	lead := (int(first.Weekday()) + 6) % 7
	total := DaysBetween(first, m.NextStart())

	var grid [][]Day
	week := make([]Day, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, Day{})
	}
	for i := 0; i < total; i++ {
		week = append(week, first.AddDays(i))
		if len(week) == 7 {
			grid = append(grid, week)
			week = make([]Day, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		grid = append(grid, week)
	}
	return grid
}
