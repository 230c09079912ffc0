package core

import "testing"

func TestCalendarViewNavigate(t *testing.T) {
	cases := []struct {
		view  CalendarView
		delta int
		want  CalendarView
	}{
		{CalendarView{Month: 6, Year: 2024}, 1, CalendarView{Month: 7, Year: 2024}},
		{CalendarView{Month: 6, Year: 2024}, -1, CalendarView{Month: 5, Year: 2024}},
		{CalendarView{Month: 12, Year: 2024}, 1, CalendarView{Month: 1, Year: 2025}},
		{CalendarView{Month: 1, Year: 2024}, -1, CalendarView{Month: 12, Year: 2023}},
	}
	for i, tc := range cases {
		if got := tc.view.Navigate(tc.delta); got != tc.want {
			t.Fatalf("case %d: expected %+v, got %+v", i, tc.want, got)
		}
	}
}

func TestMonthGrid(t *testing.T) {
	// June 2024 starts on a Saturday: five leading blanks, 30 days.
	weeks := MonthGrid(2024, 6)
	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	first := weeks[0]
	for i := 0; i < 5; i++ {
		if first[i] != 0 {
			t.Fatalf("expected leading blank at %d, got %d", i, first[i])
		}
	}
	if first[5] != 1 || first[6] != 2 {
		t.Fatalf("expected 1, 2 at the end of the first week, got %v", first)
	}

	// Every week is exactly seven cells and the days run 1..30.
	seen := 0
	for _, w := range weeks {
		if len(w) != 7 {
			t.Fatalf("week with %d cells", len(w))
		}
		for _, d := range w {
			if d != 0 {
				seen++
				if d != seen {
					t.Fatalf("expected day %d, got %d", seen, d)
				}
			}
		}
	}
	if seen != 30 {
		t.Fatalf("expected 30 days, got %d", seen)
	}

	// July 2024 starts on a Monday: no leading blanks.
	weeks = MonthGrid(2024, 7)
	if weeks[0][0] != 1 {
		t.Fatalf("expected July 2024 to start the grid, got %v", weeks[0])
	}
}
