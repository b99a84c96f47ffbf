package models

import "fintrack/internal/money"

// Account represents a funds account (cash, bank card, ...).
// Balance is only ever changed by transaction application or removal;
// overdraft is allowed, so no non-negative constraint exists.
type Account struct {
	Base
	Name    string      `gorm:"not null" json:"name"`
	Balance money.Money `gorm:"not null;default:0" json:"balance"`
}
