package engine

import "time"

// BusinessDaysElapsed counts the business days (Monday through Friday, no
// holiday calendar) elapsed between two dates. The count is the number of
// weekdays in the inclusive date range minus one, so a same-day span is 0
// and a Friday-to-following-Monday span is 1. Argument order does not
// matter. A range containing no weekday at all clamps to 0.
func BusinessDaysElapsed(a, b time.Time) int {
	start := truncateToDay(a)
	end := truncateToDay(b)
	if end.Before(start) {
		start, end = end, start
	}

	weekdays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			weekdays++
		}
	}

	if weekdays == 0 {
		return 0
	}
	return weekdays - 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
