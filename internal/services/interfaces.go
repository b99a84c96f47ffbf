package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
)

// Ledger defines the contract of the ledger store: it exclusively owns the
// canonical account/category/book/transaction/budget collections, and every
// balance side effect goes through it.
type Ledger interface {
	// AddTransaction records a transaction and applies its balance effect to
	// the referenced account (expense subtracts, income adds) atomically.
	// Rejects with a validation error when the amount is not positive, a
	// referenced entity does not exist, or the kind does not match the
	// category's kind. Nothing is partially applied on failure.
	AddTransaction(bookID, categoryID, accountID uint, amount money.Money, kind models.Kind, remark string, recordTime time.Time) (*models.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance
	// effect exactly. Unknown ids fail with TRANSACTION_NOT_FOUND.
	DeleteTransaction(id uint) error

	// TransactionsByPeriod returns transactions with start <= record_time <=
	// end, newest first. An empty period yields an empty slice, never an error.
	TransactionsByPeriod(start, end time.Time) ([]models.Transaction, error)

	// TransactionsPage returns one page of transactions, optionally bounded
	// to an inclusive record-time window, newest first.
	TransactionsPage(page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Transaction], error)

	AllTransactions() ([]models.Transaction, error)
	AllCategories() ([]models.Category, error)
	AllAccounts() ([]models.Account, error)
	AllBooks() ([]models.Book, error)

	// CategoryByID returns (nil, nil) when the category does not exist;
	// absence is a valid state, callers substitute a placeholder name.
	CategoryByID(id uint) (*models.Category, error)

	// UpsertBudget replaces the budget row for (year, month).
	UpsertBudget(year, month int, amount money.Money) error

	// BudgetFor returns (nil, nil) when no budget is set for the month.
	BudgetFor(year, month int) (*models.Budget, error)

	// MonthlyStats sums transactions whose record time falls within the
	// local calendar month, split by kind.
	MonthlyStats(year, month int) (*models.MonthlyStats, error)
}

// Stats defines the aggregation engine: pure derivations over the ledger
// store's state at call time.
type Stats interface {
	TodayStats(now time.Time) (*models.TodayStats, error)
	MonthlyStats(year, month int) (*models.MonthlyStats, error)
	BudgetUsage(now time.Time) (*models.BudgetUsage, error)
}
