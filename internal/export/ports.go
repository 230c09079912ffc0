// Package export defines the outbound port the export worker writes
// through, with adapters for Google Sheets and an in-memory target.
package export

import (
	"context"

	"budgetbot/internal/core"
)

// Row is one exported ledger transaction.
type Row struct {
	ID       int64
	UserID   int64
	Amount   float64
	IsIncome bool
	Date     core.Date
}

// RowAppender appends a row to the export target and returns an opaque
// reference to where it landed.
type RowAppender interface {
	Append(ctx context.Context, row Row) (ref string, err error)
}
