package symbols

import "time"

// monthAbbrevs maps the three-letter month tokens used in monthly option
// and futures symbols.
var monthAbbrevs = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

// lastWeekdayOfMonth returns the last occurrence of wd in the given month.
// Monthly option contracts expire on this date.
func lastWeekdayOfMonth(year int, month time.Month, wd time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// nthWeekdayOfMonth returns the nth occurrence of wd in the given month.
// When the month has fewer than n such weekdays the previous occurrence is
// used instead; weekly symbols encoding a fifth week in a four-week month
// settle on the fourth, they do not error.
func nthWeekdayOfMonth(year int, month time.Month, wd time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	d = d.AddDate(0, 0, 7*(n-1))
	if d.Month() != month {
		d = d.AddDate(0, 0, -7)
	}
	return d
}

// lastDayOfMonth returns the final calendar day of the given month. The
// futures path approximates expiry with this date rather than an exchange
// weekday; the asymmetry with the options path is intentional.
func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
}
