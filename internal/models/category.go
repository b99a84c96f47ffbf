package models

// Category classifies transactions. Kind is immutable after creation;
// no update operation exists for categories.
type Category struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Kind Kind   `gorm:"not null" json:"type"`
}
