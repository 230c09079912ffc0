// Package bot wires Telegram updates to the accounting service. It owns
// the long-poll loop, the per-user conversation state and the inline
// calendar, and keeps every handler panic from taking the process down.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"budgetbot/internal/core"
	"budgetbot/internal/services"
	"budgetbot/internal/session"
)

type Handler struct {
	api         *tgbotapi.BotAPI
	accounting  *services.Accounting
	sessions    *session.Manager
	pollTimeout time.Duration
}

func New(token string, pollTimeout time.Duration, accounting *services.Accounting, sessions *session.Manager) (*Handler, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:         api,
		accounting:  accounting,
		sessions:    sessions,
		pollTimeout: pollTimeout,
	}, nil
}

// Start runs the long-poll loop until the context is cancelled.
func (h *Handler) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "bot started", "username", h.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(h.pollTimeout.Seconds())
	updates := h.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			h.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.dispatch(ctx, update)
		}
	}
}

// dispatch fans one update out to the right handler. A panic in a
// handler is logged and answered with a generic failure so one bad
// update cannot kill the loop.
func (h *Handler) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "handler panicked", "panic", r)
			if update.Message != nil {
				h.reply(update.Message.Chat.ID, msgTransient)
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
	case update.Message != nil:
		h.handleText(ctx, update.Message)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if err := h.accounting.Register(ctx, userID); err != nil {
			slog.ErrorContext(ctx, "register failed", "user_id", userID, "error", err)
			h.reply(chatID, msgTransient)
			return
		}
		h.sessions.Clear(userID)
		h.reply(chatID, msgWelcome)

	case "balance":
		h.sessions.Await(userID, session.StateAwaitingBalance)
		h.reply(chatID, msgAskBalance)

	case "add_income":
		h.sessions.Await(userID, session.StateAwaitingIncome)
		h.reply(chatID, msgAskIncome)

	case "add_expense":
		h.sessions.Await(userID, session.StateAwaitingExpense)
		h.reply(chatID, msgAskExpense)

	case "show_calendar":
		view := core.CurrentView()
		h.sessions.SetCalendar(userID, view)
		out := tgbotapi.NewMessage(chatID, "Pick a day:")
		out.ReplyMarkup = calendarMarkup(view)
		h.send(out)

	case "daily_summary":
		h.sendSummary(ctx, chatID, userID, core.PeriodDay)
	case "weekly_summary":
		h.sendSummary(ctx, chatID, userID, core.PeriodWeek)
	case "monthly_summary":
		h.sendSummary(ctx, chatID, userID, core.PeriodMonth)
	case "yearly_summary":
		h.sendSummary(ctx, chatID, userID, core.PeriodYear)

	case "top":
		incomes, err := h.accounting.TopIncomes(ctx, userID)
		if err == nil {
			var expenses []core.Transaction
			expenses, err = h.accounting.TopExpenses(ctx, userID)
			if err == nil {
				h.reply(chatID, topReply(incomes, expenses))
				return
			}
		}
		slog.ErrorContext(ctx, "top query failed", "user_id", userID, "error", err)
		h.reply(chatID, msgTransient)

	case "set_fixed":
		h.handleSetFixed(ctx, chatID, msg.CommandArguments())

	default:
		h.reply(chatID, msgIdleHint)
	}
}

// handleSetFixed upserts a fixed expense from "/set_fixed <name> <amount>".
func (h *Handler) handleSetFixed(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		h.reply(chatID, "Usage: /set_fixed <name> <amount>")
		return
	}
	name := strings.Join(fields[:len(fields)-1], " ")
	amount, err := h.accounting.SetFixedExpense(ctx, name, fields[len(fields)-1])
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			h.reply(chatID, msgBadAmount)
			return
		}
		slog.ErrorContext(ctx, "set fixed expense failed", "name", name, "error", err)
		h.reply(chatID, msgTransient)
		return
	}
	h.reply(chatID, "Fixed expense "+name+" set to "+formatAmount(amount)+".")
}

func (h *Handler) sendSummary(ctx context.Context, chatID, userID int64, kind core.PeriodKind) {
	today := core.Today()
	from, to := core.ResolvePeriod(today, kind)
	summary, err := h.accounting.SummaryFor(ctx, userID, today, kind)
	if err != nil {
		slog.ErrorContext(ctx, "summary failed", "user_id", userID, "error", err)
		h.reply(chatID, msgTransient)
		return
	}
	h.reply(chatID, summaryReply(kind, from, to, summary))
}

// handleText routes free-form input by the user's conversation state.
// Invalid amounts re-prompt without advancing the conversation.
func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	input := strings.TrimSpace(msg.Text)

	switch h.sessions.Get(userID).State {
	case session.StateAwaitingBalance:
		balance, reserve, err := h.accounting.SetInitialBalance(ctx, userID, input)
		if err != nil {
			if errors.Is(err, core.ErrInvalidAmount) {
				h.reply(chatID, msgBadBalance)
				return
			}
			slog.ErrorContext(ctx, "set balance failed", "user_id", userID, "error", err)
			h.sessions.Clear(userID)
			h.reply(chatID, msgTransient)
			return
		}
		h.sessions.Clear(userID)
		h.reply(chatID, balanceSetReply(balance, reserve))

	case session.StateAwaitingIncome:
		amount, err := h.accounting.RegisterIncome(ctx, userID, input, core.Today())
		if err != nil {
			if errors.Is(err, core.ErrInvalidAmount) {
				h.reply(chatID, msgBadAmount)
				return
			}
			slog.ErrorContext(ctx, "register income failed", "user_id", userID, "error", err)
			h.sessions.Clear(userID)
			h.reply(chatID, msgTransient)
			return
		}
		h.sessions.Clear(userID)
		h.reply(chatID, incomeReply(amount))

	case session.StateAwaitingExpense:
		h.registerExpense(ctx, chatID, userID, input)

	case session.StateAwaitingExpenseConfirm:
		h.reply(chatID, msgUseButtons)

	default:
		h.reply(chatID, msgIdleHint)
	}
}

func (h *Handler) registerExpense(ctx context.Context, chatID, userID int64, input string) {
	amount, err := h.accounting.RegisterExpense(ctx, userID, input, core.Today())
	switch {
	case err == nil:
		h.sessions.Clear(userID)
		h.reply(chatID, msgExpenseOK)

	case errors.Is(err, core.ErrInvalidAmount):
		h.reply(chatID, msgBadAmount)

	case errors.Is(err, core.ErrAccountNotFound):
		h.sessions.Clear(userID)
		h.reply(chatID, msgNoAccount)

	case errors.Is(err, core.ErrReserveBreach):
		balance, reserve, berr := h.accounting.Balance(ctx, userID)
		if berr != nil {
			slog.ErrorContext(ctx, "balance read failed", "user_id", userID, "error", berr)
			h.sessions.Clear(userID)
			h.reply(chatID, msgTransient)
			return
		}
		h.sessions.AwaitConfirm(userID, amount)
		out := tgbotapi.NewMessage(chatID, reserveBreachReply(amount, balance, reserve))
		out.ReplyMarkup = confirmExpenseMarkup()
		h.send(out)

	default:
		slog.ErrorContext(ctx, "register expense failed", "user_id", userID, "error", err)
		h.sessions.Clear(userID)
		h.reply(chatID, msgTransient)
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Telegram keeps the button spinner until the query is answered.
	if _, err := h.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		slog.WarnContext(ctx, "answer callback failed", "error", err)
	}
	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	data := cb.Data

	switch {
	case data == callbackNoop:

	case data == callbackExpenseConfirm:
		h.confirmExpense(ctx, chatID, userID)

	case data == callbackExpenseCancel:
		h.sessions.Clear(userID)
		h.reply(chatID, msgCancelled)

	case strings.HasPrefix(data, dayCallbackPrefix):
		day, err := parseDayCallback(data)
		if err != nil {
			slog.WarnContext(ctx, "bad day callback", "data", data, "error", err)
			return
		}
		income, expenses, err := h.accounting.DayTotals(ctx, userID, day)
		if err != nil {
			slog.ErrorContext(ctx, "day totals failed", "user_id", userID, "error", err)
			h.reply(chatID, msgTransient)
			return
		}
		h.reply(chatID, dayTotalsReply(day, income, expenses))

	case strings.HasPrefix(data, navigateCallbackPrefix):
		view, err := parseNavigateCallback(data)
		if err != nil {
			slog.WarnContext(ctx, "bad navigate callback", "data", data, "error", err)
			return
		}
		h.sessions.SetCalendar(userID, view)
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, "Pick a day:", calendarMarkup(view))
		h.send(edit)
	}
}

// confirmExpense applies the pending over-reserve expense, if one is
// still waiting. Stale confirmations from old keyboards are ignored.
func (h *Handler) confirmExpense(ctx context.Context, chatID, userID int64) {
	s := h.sessions.Get(userID)
	if s.State != session.StateAwaitingExpenseConfirm || s.PendingExpense <= 0 {
		h.reply(chatID, msgConfirmGone)
		return
	}
	if err := h.accounting.ForceExpense(ctx, userID, s.PendingExpense, core.Today()); err != nil {
		slog.ErrorContext(ctx, "force expense failed", "user_id", userID, "error", err)
		h.sessions.Clear(userID)
		h.reply(chatID, msgTransient)
		return
	}
	h.sessions.Clear(userID)
	h.reply(chatID, msgForcedOK)
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		slog.Error("send failed", "error", err)
	}
}
