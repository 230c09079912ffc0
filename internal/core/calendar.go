package core

// CalendarView is the month a user is currently browsing. It lives in the
// per-user session only; nothing about it is persisted.
type CalendarView struct {
	Month int // 1-12
	Year  int
}

// CurrentView returns the view for today's month.
func CurrentView() CalendarView {
	t := Today()
	return CalendarView{Month: t.Month(), Year: t.Year()}
}

// Navigate shifts the view by delta months, wrapping December to January
// of the next year and January back to December of the previous one.
func (v CalendarView) Navigate(delta int) CalendarView {
	m := v.Month + delta
	y := v.Year
	for m > 12 {
		m -= 12
		y++
	}
	for m < 1 {
		m += 12
		y--
	}
	return CalendarView{Month: m, Year: y}
}

// MonthGrid lays out a month as Monday-first weeks of day numbers. Cells
// before the first day and after the last are zero, so a renderer can
// emit them as blanks.
func MonthGrid(year, month int) [][]int {
	first, _ := MonthRange(year, month)
	lead := (int(first.Weekday()) + 6) % 7 // Monday=0
	total := daysIn(year, month)

	cells := make([]int, lead, lead+total)
	for d := 1; d <= total; d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}
