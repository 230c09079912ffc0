package core

import (
	"errors"
	"time"
)

// ReserveRate is the share of the initial balance that becomes the
// protected reserve when a user sets their balance.
const ReserveRate = 0.20

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date with no time component. The zero value is
	// the zero time.
	Date struct {
		time.Time
	}

	// Transaction is one posted income or expense. Rows are append-only.
	Transaction struct {
		ID       int64
		UserID   int64
		Amount   float64
		IsIncome bool
		Date     Date
	}

	// FixedExpense is a named recurring cost. It carries no date: every
	// aggregation over any range includes the full fixed-expense total.
	FixedExpense struct {
		Name   string
		Amount float64
	}

	// PeriodSummary is the aggregated result for a date range.
	PeriodSummary struct {
		Income   float64
		Expenses float64
		Net      float64
	}

	// AggregationMode selects how fixed expenses fold into a summary.
	AggregationMode int
)

const (
	// AggregatePlain adds the fixed-expense total to expenses only.
	// Used for monthly summaries.
	AggregatePlain AggregationMode = iota
	// AggregateFixedNetted additionally subtracts the fixed-expense total
	// from income. Used for daily, weekly and yearly summaries. The
	// asymmetry is inherited behavior and kept as is.
	AggregateFixedNetted
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrReserveBreach   = errors.New("expense would breach the reserve")
	ErrAccountNotFound = errors.New("account not found")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date truncated to day precision.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a 2006-01-02 string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String renders the date as 2006-01-02, the form the store persists.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// ReserveFor computes the reserve threshold for an initial balance.
func ReserveFor(balance float64) float64 {
	return balance * ReserveRate
}

// Summarize folds transaction sums and the fixed-expense total into a
// PeriodSummary according to the aggregation mode.
func Summarize(income, expenses, fixed float64, mode AggregationMode) PeriodSummary {
	s := PeriodSummary{
		Income:   income,
		Expenses: expenses + fixed,
	}
	if mode == AggregateFixedNetted {
		s.Income = income - fixed
	}
	s.Net = s.Income - s.Expenses
	return s
}
