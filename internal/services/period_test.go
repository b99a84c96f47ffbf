package services

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	at := time.Date(2025, 3, 15, 13, 45, 12, 0, loc)

	start, end := DayBounds(at)

	wantStart := time.Date(2025, 3, 15, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 3, 15, 23, 59, 59, 999*int(time.Millisecond), loc)

	if !start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, end)
	}
}

func TestMonthBounds(t *testing.T) {
	t.Run("regular_month", func(t *testing.T) {
		start, end := MonthBounds(2025, time.April, time.UTC)

		if !start.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start %v", start)
		}
		want := time.Date(2025, 4, 30, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
		if !end.Equal(want) {
			t.Errorf("expected end %v, got %v", want, end)
		}
	})

	t.Run("leap_february", func(t *testing.T) {
		_, end := MonthBounds(2024, time.February, time.UTC)

		want := time.Date(2024, 2, 29, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
		if !end.Equal(want) {
			t.Errorf("expected end %v, got %v", want, end)
		}
	})

	t.Run("december_rolls_into_next_year", func(t *testing.T) {
		_, end := MonthBounds(2025, time.December, time.UTC)

		want := time.Date(2025, 12, 31, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
		if !end.Equal(want) {
			t.Errorf("expected end %v, got %v", want, end)
		}
	})
}
