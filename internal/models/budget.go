package models

import "fintrack/internal/money"

// Budget is the monthly spending budget. Exactly one row exists per
// (period_year, period_month); setting a budget for an existing month
// replaces the previous amount.
type Budget struct {
	Base
	PeriodYear  int         `gorm:"not null;uniqueIndex:idx_budgets_period" json:"period_year"`
	PeriodMonth int         `gorm:"not null;uniqueIndex:idx_budgets_period" json:"period_month"`
	Amount      money.Money `gorm:"not null" json:"amount"`
}
