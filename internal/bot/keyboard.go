package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"budgetbot/internal/core"
)

// Callback data formats. Day cells carry their full date so a selection
// stays valid even after the user navigates away from the month.
const (
	callbackNoop           = "noop"
	callbackExpenseConfirm = "expense_confirm"
	callbackExpenseCancel  = "expense_cancel"

	dayCallbackPrefix      = "day_"
	navigateCallbackPrefix = "navigate:"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// monthTitle renders "June 2024" for the nav row.
func monthTitle(view core.CalendarView) string {
	return fmt.Sprintf("%s %d", time.Month(view.Month), view.Year)
}

// calendarMarkup builds the inline keyboard for one month: a navigation
// row, a weekday header and the Monday-first day grid.
func calendarMarkup(view core.CalendarView) tgbotapi.InlineKeyboardMarkup {
	prev := view.Navigate(-1)
	next := view.Navigate(1)

	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("◀️", fmt.Sprintf("%s%d:%d", navigateCallbackPrefix, prev.Month, prev.Year)),
			tgbotapi.NewInlineKeyboardButtonData(monthTitle(view), callbackNoop),
			tgbotapi.NewInlineKeyboardButtonData("▶️", fmt.Sprintf("%s%d:%d", navigateCallbackPrefix, next.Month, next.Year)),
		},
	}

	header := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for _, day := range weekdayHeader {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(day, callbackNoop))
	}
	rows = append(rows, header)

	for _, week := range core.MonthGrid(view.Year, view.Month) {
		row := make([]tgbotapi.InlineKeyboardButton, 0, 7)
		for _, d := range week {
			if d == 0 {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", callbackNoop))
				continue
			}
			data := fmt.Sprintf("%s%d_%d_%d", dayCallbackPrefix, d, view.Month, view.Year)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(d), data))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// confirmExpenseMarkup is the Confirm/Cancel keyboard shown when an
// expense would breach the reserve.
func confirmExpenseMarkup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Spend anyway", callbackExpenseConfirm),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackExpenseCancel),
		),
	)
}

// parseDayCallback decodes "day_D_M_Y" into a date.
func parseDayCallback(data string) (core.Date, error) {
	parts := strings.Split(strings.TrimPrefix(data, dayCallbackPrefix), "_")
	if len(parts) != 3 {
		return core.Date{}, fmt.Errorf("malformed day callback %q", data)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return core.Date{}, fmt.Errorf("malformed day callback %q", data)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return core.Date{}, fmt.Errorf("day callback out of range %q", data)
	}
	return core.NewDate(year, month, day), nil
}

// parseNavigateCallback decodes "navigate:M:Y" into a calendar view.
func parseNavigateCallback(data string) (core.CalendarView, error) {
	parts := strings.Split(strings.TrimPrefix(data, navigateCallbackPrefix), ":")
	if len(parts) != 2 {
		return core.CalendarView{}, fmt.Errorf("malformed navigate callback %q", data)
	}
	month, err1 := strconv.Atoi(parts[0])
	year, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return core.CalendarView{}, fmt.Errorf("malformed navigate callback %q", data)
	}
	return core.CalendarView{Month: month, Year: year}, nil
}
