package bot

import (
	"fmt"
	"strings"
	"time"

	"budgetbot/internal/core"
)

const (
	msgWelcome = "Welcome! Use /balance to set your starting balance.\n\n" +
		"Commands:\n" +
		"/balance - set your balance\n" +
		"/add_income - record an income\n" +
		"/add_expense - record an expense\n" +
		"/show_calendar - browse daily totals\n" +
		"/daily_summary /weekly_summary /monthly_summary /yearly_summary - period reports\n" +
		"/top - largest incomes and expenses"

	msgAskBalance  = "Enter your current balance:"
	msgAskIncome   = "Enter the income amount:"
	msgAskExpense  = "Enter the expense amount:"
	msgBadAmount   = "That doesn't look like a valid amount. Please enter a positive number:"
	msgBadBalance  = "That doesn't look like a valid number. Please enter your balance:"
	msgNoAccount   = "I don't know you yet. Send /start first."
	msgTransient   = "Something went wrong on my side, please try again later."
	msgUseButtons  = "Please use the buttons above to confirm or cancel the expense."
	msgIdleHint    = "Pick a command to get started, e.g. /balance or /add_expense."
	msgExpenseOK   = "Expense recorded."
	msgConfirmGone = "This confirmation has expired."
	msgCancelled   = "Expense cancelled."
	msgForcedOK    = "Expense recorded. Your reserve took the hit."
)

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func balanceSetReply(balance, reserve float64) string {
	return fmt.Sprintf(
		"Balance set to %s.\n20%% of it (%s) is kept aside as your reserve.",
		formatAmount(balance), formatAmount(reserve))
}

func incomeReply(amount float64) string {
	return fmt.Sprintf("Income of %s recorded.", formatAmount(amount))
}

func reserveBreachReply(amount, balance, reserve float64) string {
	return fmt.Sprintf(
		"An expense of %s would dip into your reserve (balance %s, reserve %s).\nSpend anyway?",
		formatAmount(amount), formatAmount(balance), formatAmount(reserve))
}

func periodTitle(kind core.PeriodKind, from, to core.Date) string {
	switch kind {
	case core.PeriodDay:
		return fmt.Sprintf("Summary for %d %s %d", from.Day(), time.Month(from.Month()), from.Year())
	case core.PeriodWeek:
		return fmt.Sprintf("Summary for the week %s – %s", from.String(), to.String())
	case core.PeriodMonth:
		return fmt.Sprintf("Summary for %s %d", time.Month(from.Month()), from.Year())
	default:
		return fmt.Sprintf("Summary for %d", from.Year())
	}
}

func summaryReply(kind core.PeriodKind, from, to core.Date, s core.PeriodSummary) string {
	return fmt.Sprintf("%s\nIncome: %s\nExpenses: %s\nNet: %s",
		periodTitle(kind, from, to),
		formatAmount(s.Income), formatAmount(s.Expenses), formatAmount(s.Net))
}

func dayTotalsReply(day core.Date, income, expenses float64) string {
	return fmt.Sprintf("Date: %d %s %d\nIncome: %s\nExpenses: %s",
		day.Day(), time.Month(day.Month()), day.Year(),
		formatAmount(income), formatAmount(expenses))
}

func topReply(incomes, expenses []core.Transaction) string {
	var b strings.Builder
	b.WriteString("Top incomes:\n")
	writeTransactionList(&b, incomes)
	b.WriteString("\nTop expenses:\n")
	writeTransactionList(&b, expenses)
	return b.String()
}

func writeTransactionList(b *strings.Builder, txs []core.Transaction) {
	if len(txs) == 0 {
		b.WriteString("  none yet\n")
		return
	}
	for _, tx := range txs {
		fmt.Fprintf(b, "  %s  %s\n", tx.Date.String(), formatAmount(tx.Amount))
	}
}
