package models

import "time"

// Base contains common columns for all ledger tables.
// IDs are integer auto-increment; rows are hard-deleted so that balance
// reversals and aggregate sums always see exactly the live records.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
