package models

// Book is a logical ledger partition grouping transactions.
// At least one book must exist before a transaction can be recorded;
// a default book is seeded at first run.
type Book struct {
	Base
	Name string `gorm:"not null" json:"name"`
}
