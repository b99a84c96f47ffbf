package models

import "fintrack/internal/money"

// TodayStats is the derived day-bucket aggregate. Never persisted; it is
// recomputed from the transaction table on every read and after every
// mutation.
type TodayStats struct {
	DateLabel string      `json:"date"`
	Expense   money.Money `json:"expense"`
	Income    money.Money `json:"income"`
}

// MonthlyStats is the derived calendar-month aggregate. It is intentionally
// distinct from TodayStats: the two buckets are never conflated.
type MonthlyStats struct {
	Year    int         `json:"year"`
	Month   int         `json:"month"`
	Expense money.Money `json:"expense"`
	Income  money.Money `json:"income"`
}

// BudgetUsage describes consumption of the active monthly budget.
// HasBudget distinguishes "no budget set" from "0% used": when the monthly
// budget is absent or zero, HasBudget is false and Ratio is meaningless.
// Remaining may go negative when spending exceeds the budget.
type BudgetUsage struct {
	Budget    money.Money `json:"budget"`
	Spent     money.Money `json:"spent"`
	Remaining money.Money `json:"remaining"`
	Ratio     float64     `json:"ratio"`
	HasBudget bool        `json:"has_budget"`
}
