package models

// Wisdom is a single stored quote. Author is derived at import time by
// splitting the raw text on its last " - " delimiter and may be absent.
type Wisdom struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Text   string  `gorm:"not null" json:"text"`
	Author *string `json:"author"`
}
