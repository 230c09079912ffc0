// Package worker drains the export queue: each message names a posted
// transaction, which gets re-read from the ledger and appended to the
// configured export target.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbot/internal/amqp"
	"budgetbot/internal/core"
	"budgetbot/internal/export"
)

// Ledger is the slice of the store the worker needs.
type Ledger interface {
	TransactionByID(ctx context.Context, id int64) (core.Transaction, error)
	IsExported(ctx context.Context, id int64) (bool, error)
	PendingExports(ctx context.Context, limit int) ([]int64, error)
	MarkExported(ctx context.Context, id int64) error
	MarkExportError(ctx context.Context, id int64) error
}

type ExportWorker struct {
	ledger    Ledger
	target    export.RowAppender
	batchSize int
}

func NewExportWorker(ledger Ledger, target export.RowAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		ledger:    ledger,
		target:    target,
		batchSize: batchSize,
	}
}

// HandleExportMessage processes one queue message. An append failure
// marks the row and returns the error so the delivery is requeued.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.TransactionExportMessage) error {
	return w.exportOne(ctx, msg.ID)
}

// StartupCheck sweeps the pending backlog directly, catching rows whose
// queue message was lost (publish failure, broker restart).
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	ids, err := w.ledger.PendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending exports: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Exporting pending backlog", "count", len(ids))

	var failed int
	for _, id := range ids {
		if err := w.exportOne(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Backlog export failed", "id", id, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("startup export: %d of %d rows failed", failed, len(ids))
	}
	return nil
}

func (w *ExportWorker) exportOne(ctx context.Context, id int64) error {
	// The startup sweep and the queue can both deliver the same row;
	// a row that already made it to the target is not appended twice.
	done, err := w.ledger.IsExported(ctx, id)
	if err != nil {
		return fmt.Errorf("check export status %d: %w", id, err)
	}
	if done {
		slog.InfoContext(ctx, "Transaction already exported, skipping", "id", id)
		return nil
	}

	txn, err := w.ledger.TransactionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction %d: %w", id, err)
	}

	ref, err := w.target.Append(ctx, export.Row{
		ID:       txn.ID,
		UserID:   txn.UserID,
		Amount:   txn.Amount,
		IsIncome: txn.IsIncome,
		Date:     txn.Date,
	})
	if err != nil {
		if markErr := w.ledger.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append transaction %d: %w", id, err)
	}

	if err := w.ledger.MarkExported(ctx, id); err != nil {
		return fmt.Errorf("mark transaction %d exported: %w", id, err)
	}

	slog.InfoContext(ctx, "Transaction exported", "id", id, "ref", ref)
	return nil
}
