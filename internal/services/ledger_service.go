package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
)

// ledgerService is the gorm-backed ledger store.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new Ledger over the given database.
func NewLedgerService(db *gorm.DB) Ledger {
	return &ledgerService{db: db}
}

// AddTransaction validates the mutation, then creates the transaction row
// and adjusts the account balance inside a single database transaction.
func (s *ledgerService) AddTransaction(
	bookID, categoryID, accountID uint,
	amount money.Money,
	kind models.Kind,
	remark string,
	recordTime time.Time,
) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "type must be 0 (expense) or 1 (income)")
	}

	if recordTime.IsZero() {
		recordTime = time.Now()
	}
	recordTime = recordTime.Truncate(time.Millisecond)

	// Validate every reference before mutating anything.
	var book models.Book
	if err := s.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "book does not exist")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "category does not exist")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.Kind != kind {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "transaction type does not match category type")
	}

	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "account does not exist")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		BookID:     bookID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     amount,
		Kind:       kind,
		Remark:     remark,
		RecordTime: recordTime,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return applyBalanceDelta(tx, accountID, balanceDelta(kind, amount))
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction removes the transaction and reverses its effect on the
// owning account's balance, atomically.
func (s *ledgerService) DeleteTransaction(id uint) error {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reverse of the original adjustment.
		return applyBalanceDelta(tx, transaction.AccountID, -balanceDelta(transaction.Kind, transaction.Amount))
	})
}

// balanceDelta is the signed effect of a transaction on its account:
// expenses subtract, income adds.
func balanceDelta(kind models.Kind, amount money.Money) money.Money {
	if kind == models.KindIncome {
		return amount
	}
	return -amount
}

func applyBalanceDelta(tx *gorm.DB, accountID uint, delta money.Money) error {
	result := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", int64(delta)))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// TransactionsByPeriod returns transactions with record_time in
// [start, end], newest first.
func (s *ledgerService) TransactionsByPeriod(start, end time.Time) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := s.db.
		Where("record_time BETWEEN ? AND ?", start, end).
		Order("record_time DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// TransactionsPage returns one page of transactions, newest first,
// optionally bounded to an inclusive record-time window.
func (s *ledgerService) TransactionsPage(page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if from != nil {
		base = base.Where("record_time >= ?", *from)
	}
	if to != nil {
		base = base.Where("record_time <= ?", *to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("record_time DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AllTransactions returns every transaction, newest first.
func (s *ledgerService) AllTransactions() ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := s.db.Order("record_time DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// AllCategories returns every category.
func (s *ledgerService) AllCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// AllAccounts returns every account.
func (s *ledgerService) AllAccounts() ([]models.Account, error) {
	accounts := []models.Account{}
	if err := s.db.Order("id").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// AllBooks returns every book.
func (s *ledgerService) AllBooks() ([]models.Book, error) {
	books := []models.Book{}
	if err := s.db.Order("id").Find(&books).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return books, nil
}

// CategoryByID returns the category, or (nil, nil) when it does not exist.
func (s *ledgerService) CategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpsertBudget replaces any existing budget row for (year, month).
func (s *ledgerService) UpsertBudget(year, month int, amount money.Money) error {
	if amount < 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "budget amount must not be negative")
	}
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}

	budget := &models.Budget{
		PeriodYear:  year,
		PeriodMonth: month,
		Amount:      amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "period_year"}, {Name: "period_month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// BudgetFor returns the budget for the month, or (nil, nil) when unset.
func (s *ledgerService) BudgetFor(year, month int) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.
		Where("period_year = ? AND period_month = ?", year, month).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// MonthlyStats sums the month's transactions split by kind, in local time.
func (s *ledgerService) MonthlyStats(year, month int) (*models.MonthlyStats, error) {
	start, end := MonthBounds(year, time.Month(month), time.Local)

	sumKind := func(kind models.Kind) (money.Money, error) {
		var total int64
		err := s.db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("kind = ? AND record_time BETWEEN ? AND ?", kind, start, end).
			Scan(&total).Error
		if err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return money.Money(total), nil
	}

	expense, err := sumKind(models.KindExpense)
	if err != nil {
		return nil, err
	}
	income, err := sumKind(models.KindIncome)
	if err != nil {
		return nil, err
	}

	return &models.MonthlyStats{
		Year:    year,
		Month:   month,
		Expense: expense,
		Income:  income,
	}, nil
}
