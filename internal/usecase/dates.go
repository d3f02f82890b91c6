package usecase

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// InclusiveDays counts calendar days from start to end, both included.
// 2024-01-01..2024-01-03 is 3 days.
func InclusiveDays(start, end string) (int, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0, fmt.Errorf("start date %q: expected YYYY-MM-DD", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0, fmt.Errorf("end date %q: expected YYYY-MM-DD", end)
	}
	if e.Before(s) {
		return 0, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// overlapDays counts the days of [start, end] that fall inside [from, to].
func overlapDays(start, end, from, to string) int {
	if start < from {
		start = from
	}
	if end > to {
		end = to
	}
	days, err := InclusiveDays(start, end)
	if err != nil {
		return 0
	}
	return days
}

// periodBounds returns the first and last day of the month, or of the whole
// year when month is 0.
func periodBounds(year, month int) (string, string) {
	if month == 0 {
		return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
