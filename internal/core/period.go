package core

import "time"

// PeriodKind names the summary windows a user can ask for.
type PeriodKind int

const (
	PeriodDay PeriodKind = iota
	PeriodWeek
	PeriodMonth
	PeriodYear
)

// ResolvePeriod computes the inclusive [start, end] range containing
// today for the given kind. Weeks run Monday through Sunday; months end
// on their true last day, computed as first-of-next-month minus one day.
func ResolvePeriod(today Date, kind PeriodKind) (Date, Date) {
	switch kind {
	case PeriodWeek:
		// time.Weekday has Sunday=0; shift to Monday=0.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDays(-offset)
		return start, start.AddDays(6)
	case PeriodMonth:
		return MonthRange(today.Year(), today.Month())
	case PeriodYear:
		return NewDate(today.Year(), 1, 1), NewDate(today.Year(), 12, 31)
	default:
		return today, today
	}
}

// MonthRange returns the first and last day of the given month. The end
// is derived from the first of the following month minus one day, which
// handles 28/29/30/31-day months and leap years.
func MonthRange(year, month int) (Date, Date) {
	start := NewDate(year, month, 1)
	end := Date{Time: start.AddDate(0, 1, 0).AddDate(0, 0, -1)}
	return start, end
}

// daysIn returns the number of days in a month.
func daysIn(year, month int) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
