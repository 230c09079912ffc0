// Package session tracks per-user conversation state. Two-step commands
// (set balance, add income, add expense) ask for a number and wait for
// the next message; the awaited step lives here, keyed by user id, and is
// cleared when the step completes or fails.
package session

import (
	"sync"

	"budgetbot/internal/core"
)

// State is the input the conversation is currently waiting for.
type State int

const (
	StateIdle State = iota
	StateAwaitingBalance
	StateAwaitingIncome
	StateAwaitingExpense
	StateAwaitingExpenseConfirm
)

// Session is one user's conversation context. PendingExpense is only
// meaningful in StateAwaitingExpenseConfirm: it holds the parsed amount
// of an expense that breached the reserve and awaits confirmation.
type Session struct {
	State          State
	PendingExpense float64
	Calendar       core.CalendarView
}

// Manager holds sessions for all users. Safe for concurrent use; users
// never share a session, so contention is limited to the map itself.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, creating an idle one on first contact.
func (m *Manager) Get(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return *s
	}
	return Session{State: StateIdle, Calendar: core.CurrentView()}
}

// Await moves the user into a waiting state with no pending amount.
func (m *Manager) Await(userID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.ensure(userID)
	s.State = state
	s.PendingExpense = 0
}

// AwaitConfirm parks a reserve-breaching expense amount until the user
// confirms or cancels it.
func (m *Manager) AwaitConfirm(userID int64, amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.ensure(userID)
	s.State = StateAwaitingExpenseConfirm
	s.PendingExpense = amount
}

// SetCalendar records the month the user is browsing.
func (m *Manager) SetCalendar(userID int64, view core.CalendarView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(userID).Calendar = view
}

// Clear returns the user to idle and drops any pending amount. The
// calendar view survives so navigation keeps its place.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.ensure(userID)
	s.State = StateIdle
	s.PendingExpense = 0
}

func (m *Manager) ensure(userID int64) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle, Calendar: core.CurrentView()}
		m.sessions[userID] = s
	}
	return s
}
