package bot

import (
	"strings"
	"testing"

	"budgetbot/internal/core"
)

func TestSummaryReply(t *testing.T) {
	from := core.NewDate(2024, 6, 1)
	to := core.NewDate(2024, 6, 30)
	s := core.PeriodSummary{Income: 200, Expenses: 1100, Net: -900}

	got := summaryReply(core.PeriodMonth, from, to, s)
	for _, want := range []string{"June 2024", "Income: 200.00", "Expenses: 1100.00", "Net: -900.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestPeriodTitle(t *testing.T) {
	tests := []struct {
		kind core.PeriodKind
		want string
	}{
		{core.PeriodDay, "Summary for 13 June 2024"},
		{core.PeriodWeek, "Summary for the week 2024-06-10 – 2024-06-16"},
		{core.PeriodMonth, "Summary for June 2024"},
		{core.PeriodYear, "Summary for 2024"},
	}
	for _, tt := range tests {
		from, to := core.ResolvePeriod(core.NewDate(2024, 6, 13), tt.kind)
		if got := periodTitle(tt.kind, from, to); got != tt.want {
			t.Errorf("kind %v: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDayTotalsReply(t *testing.T) {
	got := dayTotalsReply(core.NewDate(2024, 6, 13), 0, 350)
	want := "Date: 13 June 2024\nIncome: 0.00\nExpenses: 350.00"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTopReply(t *testing.T) {
	incomes := []core.Transaction{
		{Amount: 1000, IsIncome: true, Date: core.NewDate(2024, 6, 1)},
	}
	got := topReply(incomes, nil)
	if !strings.Contains(got, "2024-06-01  1000.00") {
		t.Errorf("top reply missing income line: %q", got)
	}
	if !strings.Contains(got, "none yet") {
		t.Errorf("top reply should mark empty expense list: %q", got)
	}
}
