package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/projection"
	"fintrack/internal/testutil"
)

func setupTracker(t *testing.T) (*Tracker, *projection.Projector, Ledger, *testFixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	ledger := NewLedgerService(db)
	stats := NewStatsService(ledger)
	proj := projection.NewProjector()
	tracker := NewTracker(ledger, stats, proj)

	now := time.Date(2025, 3, 15, 14, 0, 0, 0, time.Local)
	tracker.now = func() time.Time { return now }

	fx := &testFixtures{
		book:       testutil.CreateTestBook(t, db),
		account:    testutil.CreateTestAccountWithBalance(t, db, 10000),
		expenseCat: testutil.CreateTestCategory(t, db, models.KindExpense),
		incomeCat:  testutil.CreateTestCategory(t, db, models.KindIncome),
		now:        now,
	}
	return tracker, proj, ledger, fx
}

type testFixtures struct {
	book       *models.Book
	account    *models.Account
	expenseCat *models.Category
	incomeCat  *models.Category
	now        time.Time
}

func TestTrackerBootstrap(t *testing.T) {
	tracker, proj, _, fx := setupTracker(t)

	testutil.AssertNoError(t, tracker.Bootstrap())

	snap := proj.Snapshot()
	if snap.Version == 0 {
		t.Fatal("expected a published snapshot")
	}
	if len(snap.Accounts) != 1 || snap.Accounts[0].Balance != fx.account.Balance {
		t.Errorf("expected seeded account in snapshot, got %+v", snap.Accounts)
	}
	if len(snap.Transactions) != 0 {
		t.Errorf("expected no transactions yet, got %d", len(snap.Transactions))
	}
}

func TestTrackerAddTransaction(t *testing.T) {
	t.Run("mutation_and_aggregates_in_one_snapshot", func(t *testing.T) {
		tracker, proj, _, fx := setupTracker(t)
		testutil.AssertNoError(t, tracker.Bootstrap())

		_, err := tracker.AddTransaction(fx.book.ID, fx.expenseCat.ID, fx.account.ID, 1500, models.KindExpense, "午餐", fx.now)
		testutil.AssertNoError(t, err)

		snap := proj.Snapshot()
		if len(snap.Transactions) != 1 {
			t.Fatalf("expected 1 transaction in snapshot, got %d", len(snap.Transactions))
		}
		if snap.Accounts[0].Balance != 8500 {
			t.Errorf("expected balance 8500 in the same snapshot, got %d", snap.Accounts[0].Balance)
		}
		if snap.TodayStats.Expense != 1500 {
			t.Errorf("expected today expense 1500 in the same snapshot, got %d", snap.TodayStats.Expense)
		}
		if snap.MonthlyStats.Expense != 1500 {
			t.Errorf("expected monthly expense 1500 in the same snapshot, got %d", snap.MonthlyStats.Expense)
		}
	})

	t.Run("failed_mutation_publishes_nothing", func(t *testing.T) {
		tracker, proj, _, fx := setupTracker(t)
		testutil.AssertNoError(t, tracker.Bootstrap())
		before := proj.Snapshot().Version

		_, err := tracker.AddTransaction(fx.book.ID, 9999, fx.account.ID, 1500, models.KindExpense, "", fx.now)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		if got := proj.Snapshot().Version; got != before {
			t.Errorf("expected snapshot version unchanged, got %d -> %d", before, got)
		}
	})
}

func TestTrackerDeleteTransaction(t *testing.T) {
	tracker, proj, _, fx := setupTracker(t)
	testutil.AssertNoError(t, tracker.Bootstrap())

	tx, err := tracker.AddTransaction(fx.book.ID, fx.expenseCat.ID, fx.account.ID, 1500, models.KindExpense, "", fx.now)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, tracker.DeleteTransaction(tx.ID))

	snap := proj.Snapshot()
	if len(snap.Transactions) != 0 {
		t.Errorf("expected no transactions after delete, got %d", len(snap.Transactions))
	}
	if snap.Accounts[0].Balance != 10000 {
		t.Errorf("expected balance restored to 10000, got %d", snap.Accounts[0].Balance)
	}
	if snap.TodayStats.Expense != 0 {
		t.Errorf("expected today expense reset, got %d", snap.TodayStats.Expense)
	}
}

func TestTrackerSetBudget(t *testing.T) {
	tracker, proj, _, fx := setupTracker(t)
	testutil.AssertNoError(t, tracker.Bootstrap())

	_, err := tracker.AddTransaction(fx.book.ID, fx.expenseCat.ID, fx.account.ID, 4500, models.KindExpense, "", fx.now)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, tracker.SetBudget(2025, 3, 10000))

	snap := proj.Snapshot()
	if !snap.BudgetUsage.HasBudget {
		t.Fatal("expected budget usage in snapshot")
	}
	if snap.MonthlyBudget != 10000 {
		t.Errorf("expected monthly budget 10000, got %d", snap.MonthlyBudget)
	}
	if snap.RemainingBudget != 5500 {
		t.Errorf("expected remaining budget 5500, got %d", snap.RemainingBudget)
	}
	if snap.BudgetUsage.Ratio != 0.45 {
		t.Errorf("expected ratio 0.45, got %v", snap.BudgetUsage.Ratio)
	}
}
