package bot

import (
	"testing"

	"budgetbot/internal/core"
)

func TestCalendarMarkup(t *testing.T) {
	markup := calendarMarkup(core.CalendarView{Month: 6, Year: 2024})

	if len(markup.InlineKeyboard) < 3 {
		t.Fatalf("expected nav row, header and at least one week, got %d rows", len(markup.InlineKeyboard))
	}

	nav := markup.InlineKeyboard[0]
	if got := *nav[0].CallbackData; got != "navigate:5:2024" {
		t.Errorf("prev button = %q, want navigate:5:2024", got)
	}
	if got := nav[1].Text; got != "June 2024" {
		t.Errorf("title = %q, want June 2024", got)
	}
	if got := *nav[2].CallbackData; got != "navigate:7:2024" {
		t.Errorf("next button = %q, want navigate:7:2024", got)
	}

	header := markup.InlineKeyboard[1]
	if len(header) != 7 || header[0].Text != "Mo" || header[6].Text != "Su" {
		t.Errorf("unexpected weekday header %+v", header)
	}

	// June 2024 starts on a Saturday, so the first week row has five
	// blank cells before the 1st.
	week1 := markup.InlineKeyboard[2]
	for i := 0; i < 5; i++ {
		if *week1[i].CallbackData != callbackNoop {
			t.Errorf("cell %d should be blank, got %q", i, *week1[i].CallbackData)
		}
	}
	if got := *week1[5].CallbackData; got != "day_1_6_2024" {
		t.Errorf("first day cell = %q, want day_1_6_2024", got)
	}
}

func TestCalendarMarkupYearWrap(t *testing.T) {
	markup := calendarMarkup(core.CalendarView{Month: 1, Year: 2024})

	nav := markup.InlineKeyboard[0]
	if got := *nav[0].CallbackData; got != "navigate:12:2023" {
		t.Errorf("prev button = %q, want navigate:12:2023", got)
	}
	if got := *nav[2].CallbackData; got != "navigate:2:2024" {
		t.Errorf("next button = %q, want navigate:2:2024", got)
	}
}

func TestParseDayCallback(t *testing.T) {
	tests := []struct {
		data    string
		want    string
		wantErr bool
	}{
		{data: "day_13_6_2024", want: "2024-06-13"},
		{data: "day_29_2_2024", want: "2024-02-29"},
		{data: "day_13_6", wantErr: true},
		{data: "day_x_6_2024", wantErr: true},
		{data: "day_0_6_2024", wantErr: true},
		{data: "day_13_13_2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := parseDayCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNavigateCallback(t *testing.T) {
	view, err := parseNavigateCallback("navigate:12:2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Month != 12 || view.Year != 2023 {
		t.Errorf("got %+v, want month 12 year 2023", view)
	}

	for _, data := range []string{"navigate:12", "navigate:13:2024", "navigate:x:2024"} {
		if _, err := parseNavigateCallback(data); err == nil {
			t.Errorf("%q: expected error", data)
		}
	}
}
