package models

import (
	"time"

	"fintrack/internal/money"
)

// Kind is the transaction/category type: 0 for expense, 1 for income.
type Kind int

const (
	KindExpense Kind = 0
	KindIncome  Kind = 1
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Label returns the user-facing label for the kind.
func (k Kind) Label() string {
	if k == KindIncome {
		return "收入"
	}
	return "支出"
}

// Transaction represents a single recorded expense or income.
// Amount is always positive; Kind is denormalized from the category at
// creation time and must stay consistent with it. RecordTime is stored at
// millisecond precision and defines day/month bucket membership.
type Transaction struct {
	Base
	BookID     uint        `gorm:"not null;index" json:"book_id"`
	CategoryID uint        `gorm:"not null;index" json:"category_id"`
	AccountID  uint        `gorm:"not null;index" json:"account_id"`
	Amount     money.Money `gorm:"not null" json:"amount"`
	Kind       Kind        `gorm:"not null" json:"type"`
	Remark     string      `json:"remark"`
	RecordTime time.Time   `gorm:"not null;index" json:"record_time"`
}
