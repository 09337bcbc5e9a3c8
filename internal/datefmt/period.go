package datefmt

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Period is a date range relative to the current day.
type Period int

const (
	ThisWeek Period = iota
	LastWeek
	ThisMonth
	LastMonth
	ThisYear
)

var Periods = []Period{ThisWeek, LastWeek, ThisMonth, LastMonth, ThisYear}

func (p Period) String() string {
	switch p {
	case ThisWeek:
		return "This Week"
	case LastWeek:
		return "Last Week"
	case ThisMonth:
		return "This Month"
	case LastMonth:
		return "Last Month"
	case ThisYear:
		return "This Year"
	}

	return "Unknown"
}

// Range returns the period's inclusive bounds as ISO dates. Weeks start on Monday.
// Periods containing today end today.
func (p Period) Range(clock Clock) (string, string) {
	now := clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(today.Weekday())
	if offset == 0 {
		offset = 7
	}

	var start, end time.Time

	switch p {
	case ThisWeek:
		start = today.AddDate(0, 0, -offset+1)
		end = today
	case LastWeek:
		end = today.AddDate(0, 0, -offset)
		start = end.AddDate(0, 0, -6)
	case ThisMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = today
	case LastMonth:
		start = time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case ThisYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = today
	default:
		start, end = today, today
	}

	return start.Format(ISODate), end.Format(ISODate)
}
