package services

import "time"

// YearMonth identifies a calendar month. Month is zero-based (0 = January),
// matching the stored budget representation.
type YearMonth struct {
	Year  int
	Month int
}

// MonthsInRange enumerates every (year, month) pair between start and end
// inclusive, in chronological order. Within the first year the enumeration
// starts at start's month, within the last year it stops at end's month, and
// every year in between contributes all twelve months. An inverted range
// yields nothing.
func MonthsInRange(start, end time.Time) []YearMonth {
	startYear, startMonth := start.Year(), int(start.Month())-1
	endYear, endMonth := end.Year(), int(end.Month())-1

	var pairs []YearMonth
	for year := startYear; year <= endYear; year++ {
		monthStart := 0
		if year == startYear {
			monthStart = startMonth
		}
		monthEnd := 11
		if year == endYear {
			monthEnd = endMonth
		}
		for month := monthStart; month <= monthEnd; month++ {
			pairs = append(pairs, YearMonth{Year: year, Month: month})
		}
	}
	return pairs
}

// monthWindow returns the inclusive time window covering the calendar month
// that contains t, in t's location.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
