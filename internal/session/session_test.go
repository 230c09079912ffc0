package session

import (
	"sync"
	"testing"

	"budgetbot/internal/core"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	s := m.Get(1)
	if s.State != StateIdle {
		t.Fatalf("expected idle on first contact, got %v", s.State)
	}

	m.Await(1, StateAwaitingIncome)
	if got := m.Get(1).State; got != StateAwaitingIncome {
		t.Fatalf("expected awaiting income, got %v", got)
	}

	m.Clear(1)
	if got := m.Get(1); got.State != StateIdle || got.PendingExpense != 0 {
		t.Fatalf("expected cleared session, got %+v", got)
	}
}

func TestManagerAwaitConfirmHoldsAmount(t *testing.T) {
	m := NewManager()
	m.AwaitConfirm(7, 150)
	s := m.Get(7)
	if s.State != StateAwaitingExpenseConfirm || s.PendingExpense != 150 {
		t.Fatalf("got %+v", s)
	}

	// Entering another waiting state drops the pending amount.
	m.Await(7, StateAwaitingExpense)
	if got := m.Get(7).PendingExpense; got != 0 {
		t.Fatalf("expected pending amount dropped, got %v", got)
	}
}

func TestManagerCalendarSurvivesClear(t *testing.T) {
	m := NewManager()
	view := core.CalendarView{Month: 2, Year: 2023}
	m.SetCalendar(3, view)
	m.Await(3, StateAwaitingBalance)
	m.Clear(3)
	if got := m.Get(3).Calendar; got != view {
		t.Fatalf("expected %+v, got %+v", view, got)
	}
}

func TestManagerUsersAreIndependent(t *testing.T) {
	m := NewManager()
	m.Await(1, StateAwaitingIncome)
	m.Await(2, StateAwaitingExpense)
	if m.Get(1).State != StateAwaitingIncome || m.Get(2).State != StateAwaitingExpense {
		t.Fatal("states leaked between users")
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Await(id, StateAwaitingIncome)
			m.Get(id)
			m.Clear(id)
		}(int64(i))
	}
	wg.Wait()
}
