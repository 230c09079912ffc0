package core

import "testing"

func TestResolvePeriodDay(t *testing.T) {
	d := NewDate(2024, 6, 13)
	start, end := ResolvePeriod(d, PeriodDay)
	if start != d || end != d {
		t.Fatalf("expected [%s, %s], got [%s, %s]", d, d, start, end)
	}
}

func TestResolvePeriodWeek(t *testing.T) {
	cases := []struct {
		today, start, end Date
	}{
		// Thursday resolves to the surrounding Mon..Sun.
		{NewDate(2024, 6, 13), NewDate(2024, 6, 10), NewDate(2024, 6, 16)},
		// Monday is its own start.
		{NewDate(2024, 6, 10), NewDate(2024, 6, 10), NewDate(2024, 6, 16)},
		// Sunday belongs to the week that started six days earlier.
		{NewDate(2024, 6, 16), NewDate(2024, 6, 10), NewDate(2024, 6, 16)},
		// Week spanning a month boundary.
		{NewDate(2024, 7, 1), NewDate(2024, 7, 1), NewDate(2024, 7, 7)},
	}
	for i, tc := range cases {
		start, end := ResolvePeriod(tc.today, PeriodWeek)
		if start != tc.start || end != tc.end {
			t.Fatalf("case %d: expected [%s, %s], got [%s, %s]", i, tc.start, tc.end, start, end)
		}
	}
}

func TestResolvePeriodMonth(t *testing.T) {
	cases := []struct {
		today, start, end Date
	}{
		{NewDate(2024, 3, 15), NewDate(2024, 3, 1), NewDate(2024, 3, 31)},
		{NewDate(2024, 2, 10), NewDate(2024, 2, 1), NewDate(2024, 2, 29)}, // leap year
		{NewDate(2023, 2, 10), NewDate(2023, 2, 1), NewDate(2023, 2, 28)},
		{NewDate(2024, 4, 30), NewDate(2024, 4, 1), NewDate(2024, 4, 30)},
		{NewDate(2024, 12, 5), NewDate(2024, 12, 1), NewDate(2024, 12, 31)},
	}
	for i, tc := range cases {
		start, end := ResolvePeriod(tc.today, PeriodMonth)
		if start != tc.start || end != tc.end {
			t.Fatalf("case %d: expected [%s, %s], got [%s, %s]", i, tc.start, tc.end, start, end)
		}
	}
}

func TestResolvePeriodYear(t *testing.T) {
	start, end := ResolvePeriod(NewDate(2024, 6, 13), PeriodYear)
	if start != NewDate(2024, 1, 1) || end != NewDate(2024, 12, 31) {
		t.Fatalf("got [%s, %s]", start, end)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, 2)
	if start != NewDate(2024, 2, 1) || end != NewDate(2024, 2, 29) {
		t.Fatalf("got [%s, %s]", start, end)
	}
}

func TestSummarize(t *testing.T) {
	// Fixed expenses seeded at 500+600=1100, no transactions: the plain
	// monthly summary charges the fixed total against expenses only.
	s := Summarize(0, 0, 1100, AggregatePlain)
	if s.Income != 0 || s.Expenses != 1100 || s.Net != -1100 {
		t.Fatalf("plain: got %+v", s)
	}

	// Fixed-netted mode subtracts the fixed total from income as well.
	// income 200 that day, no expenses: income 200-1100=-900,
	// expenses 0+1100=1100, net -900-1100=-2000.
	s = Summarize(200, 0, 1100, AggregateFixedNetted)
	if s.Income != -900 || s.Expenses != 1100 || s.Net != -2000 {
		t.Fatalf("fixed-netted: got %+v", s)
	}
}

func TestReserveFor(t *testing.T) {
	if got := ReserveFor(1000); got != 200 {
		t.Fatalf("expected 200, got %v", got)
	}
	if got := ReserveFor(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
