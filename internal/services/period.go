package services

import "time"

// Record times are stored at millisecond precision, so inclusive bucket
// bounds end at the last representable millisecond of the window.

// DayBounds returns the inclusive bounds of the local calendar day
// containing t: [00:00:00.000, 23:59:59.999].
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// MonthBounds returns the inclusive bounds of the calendar month in loc:
// [first instant of the month, last millisecond of the month].
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
