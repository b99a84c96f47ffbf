package services

import (
	"fmt"
	"time"

	"fintrack/internal/models"
)

// statsService is the aggregation engine: a pure derivation over the ledger
// store's state at call time. It keeps no copies of entity data.
type statsService struct {
	ledger Ledger
}

// NewStatsService creates a new Stats over the given ledger.
func NewStatsService(ledger Ledger) Stats {
	return &statsService{ledger: ledger}
}

// TodayStats sums today's transactions split by kind.
func (s *statsService) TodayStats(now time.Time) (*models.TodayStats, error) {
	start, end := DayBounds(now)
	transactions, err := s.ledger.TransactionsByPeriod(start, end)
	if err != nil {
		return nil, err
	}

	stats := &models.TodayStats{
		DateLabel: fmt.Sprintf("%d月%d日", int(now.Month()), now.Day()),
	}
	for _, t := range transactions {
		switch t.Kind {
		case models.KindIncome:
			stats.Income = stats.Income.Add(t.Amount)
		case models.KindExpense:
			stats.Expense = stats.Expense.Add(t.Amount)
		}
	}
	return stats, nil
}

// MonthlyStats returns the calendar-month aggregate. This is deliberately a
// separate aggregate from TodayStats; the two buckets are never conflated.
func (s *statsService) MonthlyStats(year, month int) (*models.MonthlyStats, error) {
	return s.ledger.MonthlyStats(year, month)
}

// BudgetUsage derives consumption of the current month's budget. A missing
// or zero budget yields the HasBudget=false sentinel, which is distinct
// from a zero usage ratio. Remaining may go negative.
func (s *statsService) BudgetUsage(now time.Time) (*models.BudgetUsage, error) {
	year, month := now.Year(), int(now.Month())

	budget, err := s.ledger.BudgetFor(year, month)
	if err != nil {
		return nil, err
	}
	monthly, err := s.ledger.MonthlyStats(year, month)
	if err != nil {
		return nil, err
	}

	usage := &models.BudgetUsage{Spent: monthly.Expense}
	if budget == nil || budget.Amount <= 0 {
		return usage, nil
	}

	usage.HasBudget = true
	usage.Budget = budget.Amount
	usage.Remaining = budget.Amount.Sub(monthly.Expense)
	usage.Ratio = clamp01(float64(monthly.Expense) / float64(budget.Amount))
	return usage, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
