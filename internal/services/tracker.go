package services

import (
	"sync"
	"time"

	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/projection"
)

// Tracker is the mutation facade over the ledger. Every mutation ends by
// synchronously recomputing the derived aggregates and publishing one
// complete snapshot before returning, so observers never see a mutation
// without its derived effects. A mutex serializes mutation+publish pairs.
type Tracker struct {
	mu     sync.Mutex
	ledger Ledger
	stats  Stats
	proj   *projection.Projector
	now    func() time.Time
}

// NewTracker creates a Tracker over the given services and projector.
func NewTracker(ledger Ledger, stats Stats, proj *projection.Projector) *Tracker {
	return &Tracker{
		ledger: ledger,
		stats:  stats,
		proj:   proj,
		now:    time.Now,
	}
}

// Bootstrap publishes the initial snapshot from current ledger state.
func (t *Tracker) Bootstrap() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refresh()
}

// AddTransaction records the transaction, then republishes the projection.
func (t *Tracker) AddTransaction(
	bookID, categoryID, accountID uint,
	amount money.Money,
	kind models.Kind,
	remark string,
	recordTime time.Time,
) (*models.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	transaction, err := t.ledger.AddTransaction(bookID, categoryID, accountID, amount, kind, remark, recordTime)
	if err != nil {
		return nil, err
	}
	if err := t.refresh(); err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction removes the transaction, then republishes the projection.
func (t *Tracker) DeleteTransaction(id uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.DeleteTransaction(id); err != nil {
		return err
	}
	return t.refresh()
}

// SetBudget upserts the monthly budget, then republishes the projection.
func (t *Tracker) SetBudget(year, month int, amount money.Money) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.UpsertBudget(year, month, amount); err != nil {
		return err
	}
	return t.refresh()
}

// refresh recomputes every derived slot from ledger state and publishes a
// single snapshot. Callers must hold t.mu.
func (t *Tracker) refresh() error {
	now := t.now()

	accounts, err := t.ledger.AllAccounts()
	if err != nil {
		return err
	}
	categories, err := t.ledger.AllCategories()
	if err != nil {
		return err
	}
	books, err := t.ledger.AllBooks()
	if err != nil {
		return err
	}
	transactions, err := t.ledger.AllTransactions()
	if err != nil {
		return err
	}
	today, err := t.stats.TodayStats(now)
	if err != nil {
		return err
	}
	monthly, err := t.stats.MonthlyStats(now.Year(), int(now.Month()))
	if err != nil {
		return err
	}
	usage, err := t.stats.BudgetUsage(now)
	if err != nil {
		return err
	}

	t.proj.Publish(func(s *projection.Snapshot) {
		s.Accounts = accounts
		s.Categories = categories
		s.Books = books
		s.Transactions = transactions
		s.TodayStats = *today
		s.MonthlyStats = *monthly
		s.MonthlyBudget = usage.Budget
		s.RemainingBudget = usage.Remaining
		s.BudgetUsage = *usage
	})

	logger.Get().Debugw("projection refreshed",
		"transactions", len(transactions),
		"monthly_expense", int64(monthly.Expense),
		"monthly_income", int64(monthly.Income),
	)
	return nil
}
