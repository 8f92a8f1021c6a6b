package symbols

import (
	"testing"
	"time"
)

func TestLastWeekdayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		wd    time.Weekday
		want  int
	}{
		{2024, time.December, time.Thursday, 26},
		{2025, time.January, time.Thursday, 30},
		{2025, time.February, time.Wednesday, 26},
		{2024, time.February, time.Thursday, 29}, // leap day is a Thursday
		{2025, time.October, time.Friday, 31},
	}

	for _, tc := range cases {
		got := lastWeekdayOfMonth(tc.year, tc.month, tc.wd)
		if got.Day() != tc.want || got.Month() != tc.month || got.Year() != tc.year {
			t.Errorf("lastWeekdayOfMonth(%d, %s, %s) = %s, want day %d",
				tc.year, tc.month, tc.wd, got.Format("2006-01-02"), tc.want)
		}
		if got.Weekday() != tc.wd {
			t.Errorf("lastWeekdayOfMonth(%d, %s, %s) fell on %s", tc.year, tc.month, tc.wd, got.Weekday())
		}
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	// January 2025: Thursdays on 2, 9, 16, 23, 30.
	for n, wantDay := range map[int]int{1: 2, 2: 9, 3: 16, 4: 23, 5: 30} {
		got := nthWeekdayOfMonth(2025, time.January, time.Thursday, n)
		if got.Day() != wantDay {
			t.Errorf("nthWeekdayOfMonth(Jan 2025, Thursday, %d) = day %d, want %d", n, got.Day(), wantDay)
		}
	}
}

func TestNthWeekdayOfMonthClamps(t *testing.T) {
	// February 2025 has only four Thursdays (6, 13, 20, 27); asking for a
	// fifth must land one week earlier than the naive offset, inside the
	// same month.
	got := nthWeekdayOfMonth(2025, time.February, time.Thursday, 5)
	if got.Month() != time.February {
		t.Fatalf("clamped date left the month: %s", got.Format("2006-01-02"))
	}
	if got.Day() != 27 {
		t.Errorf("expected day 27, got %d", got.Day())
	}

	naive := time.Date(2025, time.February, 6, 0, 0, 0, 0, time.Local).AddDate(0, 0, 28)
	if want := naive.AddDate(0, 0, -7); !got.Equal(want) {
		t.Errorf("expected one week before the naive offset, got %s", got.Format("2006-01-02"))
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2026, time.March, 31},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tc := range cases {
		got := lastDayOfMonth(tc.year, tc.month)
		if got.Day() != tc.want || got.Month() != tc.month {
			t.Errorf("lastDayOfMonth(%d, %s) = %s, want day %d",
				tc.year, tc.month, got.Format("2006-01-02"), tc.want)
		}
	}
}
