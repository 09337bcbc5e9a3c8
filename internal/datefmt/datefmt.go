// Package datefmt renders calendar dates and date ranges as short human labels.
package datefmt

import (
	"fmt"
	"strconv"
	"time"
)

// ISODate is the layout dates are exchanged in.
const ISODate = "2006-01-02"

var layouts = []string{ISODate, time.RFC3339, time.RFC3339Nano}

// Locale supplies month names, January first.
type Locale struct {
	Months [12]string
}

var English = Locale{
	Months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// Formatter renders dates with a fixed locale, independent of the host's.
// The zero value uses English.
type Formatter struct {
	Locale Locale
}

func New(locale Locale) Formatter {
	return Formatter{Locale: locale}
}

type day struct {
	year  int
	month time.Month
	day   int
}

// parse reads s as a calendar date. Timestamps keep the date of their own offset.
func parse(s string) (day, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return day{year: t.Year(), month: t.Month(), day: t.Day()}, true
		}
	}

	return day{}, false
}

func (f Formatter) month(m time.Month) string {
	name := f.Locale.Months[m-1]
	if name == "" {
		name = English.Months[m-1]
	}

	return name
}

func (f Formatter) date(d day) string {
	return fmt.Sprintf("%s %02d, %d", f.month(d.month), d.day, d.year)
}

// Date renders s as "Jan 05, 2025". Unparseable input renders as "".
func (f Formatter) Date(s string) string {
	d, ok := parse(s)
	if !ok {
		return ""
	}

	return f.date(d)
}

// Range renders the span from start to end, collapsing shared parts:
//
//	2025-01-10 2025-01-10  Jan 10, 2025
//	2025-01-01 2025-01-31  Jan 2025
//	2025-01-10 2025-01-15  Jan 10-15, 2025
//	2025-01-10 2025-05-10  Jan 10 - May 10, 2025
//	2025-01-10 2026-05-10  Jan 10, 2025 - May 10, 2026
//
// The bounds are not reordered. If either is unparseable the result is "".
func (f Formatter) Range(start, end string) string {
	s, ok := parse(start)
	if !ok {
		return ""
	}

	e, ok := parse(end)
	if !ok {
		return ""
	}

	if s.year != e.year {
		return f.date(s) + " - " + f.date(e)
	}

	if s.month != e.month {
		return fmt.Sprintf("%s %d - %s %d, %d", f.month(s.month), s.day, f.month(e.month), e.day, e.year)
	}

	if s.day == e.day {
		return f.date(s)
	}

	if s.day == 1 && e.day == daysIn(e.year, e.month) {
		return f.month(s.month) + " " + strconv.Itoa(s.year)
	}

	return fmt.Sprintf("%s %d-%d, %d", f.month(s.month), s.day, e.day, s.year)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today renders the clock's current date.
func (f Formatter) Today(clock Clock) string {
	return f.Date(clock.Now().Format(ISODate))
}
