/*
aggregate.go - calendar index and monthly summary

PURPOSE:
  Consumes the visibility-filtered record set and derives the two views
  the calendar needs:
  - a day -> records index for cell lookups (inclusive-day membership)
  - per-category monthly counts and day totals (half-open month overlap,
    at most one count per record per month)

The two overlap tests are intentionally different and must not be
unified: the cell index asks "does this record cover this day", the
summary asks "does this record touch this month". A span crossing a
month boundary appears in both adjacent months' summaries, once each.

FAILURE SEMANTICS:
  Records whose dates fail to parse are excluded from both derivations;
  they degrade to invisible, the aggregation never fails.
*/
package leave

import "github.com/shopspring/decimal"

// =============================================================================
// CALENDAR INDEX
// =============================================================================

// DayIndex maps every day of the displayed month to the filtered
// records whose window covers it. Days absent from the map (including
// the blank leading/trailing grid cells) have no records.
type DayIndex map[Day][]Record

// Records returns all records covering the day, in filtered order.
func (idx DayIndex) Records(d Day) []Record { return idx[d] }

// Representative returns the record whose category icon the cell shows:
// the first match in filtered order. The full list stays available for
// the detail view.
func (idx DayIndex) Representative(d Day) (Record, bool) {
	rs := idx[d]
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[0], true
}

// IndexByDay filters the snapshot for the viewer and indexes the result
// over the days of the displayed month. Membership is the inclusive
// day-granularity test of Window.Contains.
func IndexByDay(records []Record, viewer Viewer, sel Selection, m Month) DayIndex {
	filtered := Filter(records, viewer, sel)
	idx := make(DayIndex)
	days := DaysBetween(m.Start(), m.NextStart())
	for _, r := range filtered {
		w, err := r.Window()
		if err != nil {
			continue // malformed dates degrade to invisible
		}
		for i := 0; i < days; i++ {
			d := m.Start().AddDays(i)
			if w.Contains(d) {
				idx[d] = append(idx[d], r)
			}
		}
	}
	return idx
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// Summary holds per-category monthly counts plus the total days each
// category occupies within the month (spans clipped to the month
// window). Unknown categories increment nothing.
type Summary struct {
	Vacation int
	Sick     int
	Leave    int

	VacationDays decimal.Decimal
	SickDays     decimal.Decimal
	LeaveDays    decimal.Decimal
}

// summaryAccumulator is the fold state of a single aggregation pass.
// The seen set enforces the de-duplication invariant: a record is
// counted the moment it is first encountered and never again, so a long
// span increments its counter by one, not once per overlapping day.
type summaryAccumulator struct {
	sum  Summary
	seen map[RecordID]struct{}
}

func newSummaryAccumulator() *summaryAccumulator {
	return &summaryAccumulator{
		sum: Summary{
			VacationDays: decimal.Zero,
			SickDays:     decimal.Zero,
			LeaveDays:    decimal.Zero,
		},
		seen: make(map[RecordID]struct{}),
	}
}

func (acc *summaryAccumulator) add(r Record, m Month) {
	if _, dup := acc.seen[r.ID]; dup {
		return
	}
	w, err := r.Window()
	if err != nil {
		return // malformed dates degrade to invisible
	}
	if !m.Overlaps(w) {
		return
	}
	acc.seen[r.ID] = struct{}{}

	days := decimal.NewFromInt(int64(clippedDays(w, m)))
	switch Classify(r).Kind {
	case KindVacation:
		acc.sum.Vacation++
		acc.sum.VacationDays = acc.sum.VacationDays.Add(days)
	case KindSick:
		acc.sum.Sick++
		acc.sum.SickDays = acc.sum.SickDays.Add(days)
	case KindLeave:
		acc.sum.Leave++
		acc.sum.LeaveDays = acc.sum.LeaveDays.Add(days)
	case KindOther:
		// visible in lists, never counted
	}
}

// clippedDays counts the days of the window that fall inside the month.
func clippedDays(w Window, m Month) int {
	start := w.Start
	if start.Before(m.Start()) {
		start = m.Start()
	}
	end := w.End
	if end.After(m.End()) {
		end = m.End()
	}
	return DaysBetween(start, end) + 1
}

// MonthlySummary aggregates the given records over the month window.
// Callers pass the visibility-filtered set; the summary itself applies
// no viewer rules.
func MonthlySummary(records []Record, m Month) Summary {
	acc := newSummaryAccumulator()
	for _, r := range records {
		acc.add(r, m)
	}
	return acc.sum
}
