// Package services holds the accounting engine: validation of
// user-entered amounts, the reserve rule on expenses, and period
// aggregation. The chat layer calls in here and renders whatever comes
// back; nothing in this package knows about Telegram.
package services

import (
	"context"
	"log/slog"
	"time"

	"budgetbot/internal/cache"
	"budgetbot/internal/core"
)

// Ledger is the slice of the store the engine needs.
type Ledger interface {
	EnsureAccount(ctx context.Context, userID int64) error
	AccountExists(ctx context.Context, userID int64) (bool, error)
	SetInitialBalance(ctx context.Context, userID int64, balance float64) error
	Balance(ctx context.Context, userID int64) (balance, reserve float64, err error)
	PostIncome(ctx context.Context, userID int64, amount float64, date core.Date) (int64, error)
	PostExpense(ctx context.Context, userID int64, amount float64, date core.Date) (int64, error)
	SumTransactions(ctx context.Context, userID int64, start, end core.Date, isIncome bool) (float64, error)
	SumFixedExpenses(ctx context.Context) (float64, error)
	ListIncomes(ctx context.Context, userID int64) ([]core.Transaction, error)
	ListExpenses(ctx context.Context, userID int64) ([]core.Transaction, error)
	SetFixedExpense(ctx context.Context, name string, amount float64) error
}

// Publisher announces posted transactions to the export queue.
type Publisher interface {
	PublishTransactionExport(ctx context.Context, id int64) error
}

const fixedTotalKey = "fixed_total"

// Accounting applies the balance and reserve rules on top of the ledger.
type Accounting struct {
	ledger Ledger
	events Publisher // nil when the export queue is disabled
	fixed  *cache.LRUCache[float64]
}

func NewAccounting(ledger Ledger, events Publisher) *Accounting {
	return &Accounting{
		ledger: ledger,
		events: events,
		fixed:  cache.NewLRUCache[float64](1, 30*time.Second),
	}
}

// RunCacheJanitor evicts expired cache entries in the background until
// ctx is done.
func (a *Accounting) RunCacheJanitor(ctx context.Context, interval time.Duration) {
	a.fixed.Janitor(ctx, interval)
}

// Register creates the user's account on first contact. Idempotent.
func (a *Accounting) Register(ctx context.Context, userID int64) error {
	return a.ledger.EnsureAccount(ctx, userID)
}

// SetInitialBalance parses the entered balance, stores it together with
// the derived reserve, and returns both for display.
func (a *Accounting) SetInitialBalance(ctx context.Context, userID int64, input string) (float64, float64, error) {
	balance, err := core.ParseBalance(input)
	if err != nil {
		return 0, 0, err
	}
	if err := a.ledger.SetInitialBalance(ctx, userID, balance); err != nil {
		return 0, 0, err
	}
	return balance, core.ReserveFor(balance), nil
}

// Balance reports the stored balance and reserve for a user. Unknown
// users read as zero.
func (a *Accounting) Balance(ctx context.Context, userID int64) (float64, float64, error) {
	return a.ledger.Balance(ctx, userID)
}

// RegisterIncome parses and posts an income. Incomes never touch the
// reserve check.
func (a *Accounting) RegisterIncome(ctx context.Context, userID int64, input string, date core.Date) (float64, error) {
	amount, err := core.ParseAmount(input)
	if err != nil {
		return 0, err
	}
	id, err := a.ledger.PostIncome(ctx, userID, amount, date)
	if err != nil {
		return 0, err
	}
	a.publishExport(ctx, id)
	return amount, nil
}

// RegisterExpense parses and posts an expense, unless it would dip into
// the reserve. In that case nothing is posted and ErrReserveBreach comes
// back along with the parsed amount, so the caller can hold it for an
// explicit confirmation.
func (a *Accounting) RegisterExpense(ctx context.Context, userID int64, input string, date core.Date) (float64, error) {
	amount, err := core.ParseAmount(input)
	if err != nil {
		return 0, err
	}

	exists, err := a.ledger.AccountExists(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, core.ErrAccountNotFound
	}

	balance, reserve, err := a.ledger.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}
	if amount > balance-reserve {
		return amount, core.ErrReserveBreach
	}

	id, err := a.ledger.PostExpense(ctx, userID, amount, date)
	if err != nil {
		return 0, err
	}
	a.publishExport(ctx, id)
	return amount, nil
}

// ForceExpense posts a previously confirmed expense, bypassing the
// reserve floor. Only the confirmation flow calls this.
func (a *Accounting) ForceExpense(ctx context.Context, userID int64, amount float64, date core.Date) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	id, err := a.ledger.PostExpense(ctx, userID, amount, date)
	if err != nil {
		return err
	}
	a.publishExport(ctx, id)
	return nil
}

// Summarize aggregates the user's transactions over [start, end],
// folding in the fixed-expense total per the mode.
func (a *Accounting) Summarize(ctx context.Context, userID int64, start, end core.Date, mode core.AggregationMode) (core.PeriodSummary, error) {
	income, err := a.ledger.SumTransactions(ctx, userID, start, end, true)
	if err != nil {
		return core.PeriodSummary{}, err
	}
	expenses, err := a.ledger.SumTransactions(ctx, userID, start, end, false)
	if err != nil {
		return core.PeriodSummary{}, err
	}
	fixed, err := a.fixedTotal(ctx)
	if err != nil {
		return core.PeriodSummary{}, err
	}
	return core.Summarize(income, expenses, fixed, mode), nil
}

// SummaryFor resolves the period containing today and aggregates it.
// Monthly summaries use plain aggregation; day, week and year use the
// fixed-netted mode, matching the inherited behavior.
func (a *Accounting) SummaryFor(ctx context.Context, userID int64, today core.Date, kind core.PeriodKind) (core.PeriodSummary, error) {
	start, end := core.ResolvePeriod(today, kind)
	return a.Summarize(ctx, userID, start, end, ModeFor(kind))
}

// ModeFor maps a period kind to its aggregation mode.
func ModeFor(kind core.PeriodKind) core.AggregationMode {
	if kind == core.PeriodMonth {
		return core.AggregatePlain
	}
	return core.AggregateFixedNetted
}

// DayTotals returns the raw income and expense sums for one date, with
// no fixed-expense folding. The calendar drill-down shows these.
func (a *Accounting) DayTotals(ctx context.Context, userID int64, date core.Date) (float64, float64, error) {
	income, err := a.ledger.SumTransactions(ctx, userID, date, date, true)
	if err != nil {
		return 0, 0, err
	}
	expenses, err := a.ledger.SumTransactions(ctx, userID, date, date, false)
	if err != nil {
		return 0, 0, err
	}
	return income, expenses, nil
}

// TopIncomes lists the user's incomes, biggest first.
func (a *Accounting) TopIncomes(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return a.ledger.ListIncomes(ctx, userID)
}

// TopExpenses lists the user's expenses, smallest first.
func (a *Accounting) TopExpenses(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return a.ledger.ListExpenses(ctx, userID)
}

// SetFixedExpense parses and stores an admin fixed-expense update, then
// drops the cached total so the next summary sees the new amount.
func (a *Accounting) SetFixedExpense(ctx context.Context, name, input string) (float64, error) {
	amount, err := core.ParseAmount(input)
	if err != nil {
		return 0, err
	}
	if err := a.ledger.SetFixedExpense(ctx, name, amount); err != nil {
		return 0, err
	}
	a.fixed.Delete(fixedTotalKey)
	return amount, nil
}

func (a *Accounting) fixedTotal(ctx context.Context) (float64, error) {
	if total, ok := a.fixed.Get(fixedTotalKey); ok {
		return total, nil
	}
	total, err := a.ledger.SumFixedExpenses(ctx)
	if err != nil {
		return 0, err
	}
	a.fixed.Set(fixedTotalKey, total)
	return total, nil
}

// publishExport hands the row id to the export queue. Failures are
// logged and swallowed: the posting already committed and the worker's
// startup check sweeps up anything that never made it onto the queue.
func (a *Accounting) publishExport(ctx context.Context, id int64) {
	if a.events == nil {
		return
	}
	if err := a.events.PublishTransactionExport(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"id", id, "error", err)
	}
}
