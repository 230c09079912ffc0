// Package storage is the durable ledger: one account row per user, an
// append-only transaction log and the shared fixed-expense table, all in
// SQLite. Postings that touch both the log and the balance run in a
// single database transaction.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetbot/internal/core"

	_ "modernc.org/sqlite"
)

// Export statuses for the transactions.export_status column.
const (
	ExportPending = "pending"
	ExportDone    = "exported"
	ExportFailed  = "error"
)

type Ledger struct {
	db *sql.DB
}

func NewLedger(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// EnsureAccount creates the account row with zero balance and reserve on
// first contact. Calling it again is a no-op.
func (l *Ledger) EnsureAccount(ctx context.Context, userID int64) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID)
	if err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}
	return nil
}

// SetInitialBalance overwrites both balance and reserve. The reserve is
// fixed at this moment and not recomputed as later postings move the
// balance.
func (l *Ledger) SetInitialBalance(ctx context.Context, userID int64, balance float64) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set balance: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID); err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = ?, reserve = ? WHERE user_id = ?`,
		balance, core.ReserveFor(balance), userID); err != nil {
		return fmt.Errorf("set balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set balance: %w", err)
	}
	return nil
}

// AccountExists reports whether an account row exists for the user.
func (l *Ledger) AccountExists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE user_id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return true, nil
}

// Balance returns the user's balance and reserve, or (0, 0) when no
// account row exists.
func (l *Ledger) Balance(ctx context.Context, userID int64) (float64, float64, error) {
	var balance, reserve float64
	err := l.db.QueryRowContext(ctx,
		`SELECT balance, reserve FROM users WHERE user_id = ?`, userID).
		Scan(&balance, &reserve)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, reserve, nil
}

// PostIncome appends an income transaction and credits the balance in
// one database transaction. Returns the new row id.
func (l *Ledger) PostIncome(ctx context.Context, userID int64, amount float64, date core.Date) (int64, error) {
	return l.post(ctx, userID, amount, date, true)
}

// PostExpense appends an expense transaction and debits the balance in
// one database transaction. Returns the new row id.
func (l *Ledger) PostExpense(ctx context.Context, userID int64, amount float64, date core.Date) (int64, error) {
	return l.post(ctx, userID, amount, date, false)
}

func (l *Ledger) post(ctx context.Context, userID int64, amount float64, date core.Date, isIncome bool) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin posting: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, amount, is_income, date) VALUES (?, ?, ?, ?)`,
		userID, amount, isIncome, date.String())
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	delta := amount
	if !isIncome {
		delta = -amount
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + ? WHERE user_id = ?`, delta, userID); err != nil {
		return 0, fmt.Errorf("update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit posting: %w", err)
	}

	slog.InfoContext(ctx, "Transaction posted",
		"id", id,
		"user_id", userID,
		"amount", amount,
		"is_income", isIncome,
		"date", date.String())

	return id, nil
}

// SumTransactions sums matching amounts over the inclusive date range.
func (l *Ledger) SumTransactions(ctx context.Context, userID int64, start, end core.Date, isIncome bool) (float64, error) {
	var total float64
	err := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = ? AND is_income = ? AND date BETWEEN ? AND ?`,
		userID, isIncome, start.String(), end.String()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

// SumFixedExpenses returns the total of all fixed expenses. The table is
// global: fixed expenses are shared by every user.
func (l *Ledger) SumFixedExpenses(ctx context.Context) (float64, error) {
	var total float64
	err := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM fixed_expenses`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum fixed expenses: %w", err)
	}
	return total, nil
}

// ListIncomes returns the user's incomes sorted by amount descending.
func (l *Ledger) ListIncomes(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return l.list(ctx, userID, true, "DESC")
}

// ListExpenses returns the user's expenses sorted by amount ascending.
func (l *Ledger) ListExpenses(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return l.list(ctx, userID, false, "ASC")
}

func (l *Ledger) list(ctx context.Context, userID int64, isIncome bool, order string) ([]core.Transaction, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, user_id, amount, is_income, date FROM transactions
		 WHERE user_id = ? AND is_income = ? ORDER BY amount `+order,
		userID, isIncome)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// SetFixedExpense overwrites (or creates) a fixed expense by name.
func (l *Ledger) SetFixedExpense(ctx context.Context, name string, amount float64) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO fixed_expenses (name, amount) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET amount = excluded.amount`,
		name, amount)
	if err != nil {
		return fmt.Errorf("set fixed expense: %w", err)
	}
	return nil
}

// ListFixedExpenses returns all fixed expenses ordered by name.
func (l *Ledger) ListFixedExpenses(ctx context.Context) ([]core.FixedExpense, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT name, amount FROM fixed_expenses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	defer rows.Close()

	var out []core.FixedExpense
	for rows.Next() {
		var fe core.FixedExpense
		if err := rows.Scan(&fe.Name, &fe.Amount); err != nil {
			return nil, fmt.Errorf("scan fixed expense: %w", err)
		}
		out = append(out, fe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	return out, nil
}

// TransactionByID fetches a single transaction, for the export worker.
func (l *Ledger) TransactionByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, is_income, date FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

// PendingExports returns ids of transactions not yet exported, oldest
// first, up to limit.
func (l *Ledger) PendingExports(ctx context.Context, limit int) ([]int64, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id FROM transactions WHERE export_status = ? ORDER BY id LIMIT ?`,
		ExportPending, limit)
	if err != nil {
		return nil, fmt.Errorf("pending exports: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending exports: %w", err)
	}
	return ids, nil
}

// IsExported reports whether a transaction has already been appended to
// the export target.
func (l *Ledger) IsExported(ctx context.Context, id int64) (bool, error) {
	var status string
	err := l.db.QueryRowContext(ctx,
		`SELECT export_status FROM transactions WHERE id = ?`, id).Scan(&status)
	if err != nil {
		return false, fmt.Errorf("read export status: %w", err)
	}
	return status == ExportDone, nil
}

// MarkExported records a successful export.
func (l *Ledger) MarkExported(ctx context.Context, id int64) error {
	return l.setExportStatus(ctx, id, ExportDone)
}

// MarkExportError records a failed export attempt.
func (l *Ledger) MarkExportError(ctx context.Context, id int64) error {
	return l.setExportStatus(ctx, id, ExportFailed)
}

func (l *Ledger) setExportStatus(ctx context.Context, id int64, status string) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE transactions SET export_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set export status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		txn     core.Transaction
		dateRaw string
	)
	if err := row.Scan(&txn.ID, &txn.UserID, &txn.Amount, &txn.IsIncome, &dateRaw); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	date, err := core.ParseDate(dateRaw)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", dateRaw, err)
	}
	txn.Date = date
	return txn, nil
}
