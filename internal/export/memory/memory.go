// Package memory is the default export target: rows are held in memory
// only. It keeps the worker runnable without Google credentials and
// doubles as the test double for the worker package.
package memory

import (
	"context"
	"strconv"
	"sync"

	"budgetbot/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []export.Row
}

func New() *Store {
	return &Store{}
}

// Append implements export.RowAppender.
func (s *Store) Append(_ context.Context, row export.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return strconv.Itoa(len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []export.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]export.Row, len(s.rows))
	copy(out, s.rows)
	return out
}
