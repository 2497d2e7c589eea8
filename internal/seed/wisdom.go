// Package seed provides wisdom seeding utilities for development and fresh deployments.
package seed

import (
	"log"
	"strings"

	"wisdomwell/internal/models"

	"gorm.io/gorm"
)

// defaultWisdom ships with every fresh deployment so /wisdom has content
// before an operator imports a curated set.
var defaultWisdom = []string{
	"The journey of a thousand miles begins with a single step. - Lao Tzu",
	"What you do not want done to yourself, do not do to others. - Confucius",
	"The art of medicine is to cure sometimes, relieve often, comfort always. - Ibn Sina",
	"The wise man does not lay up his own treasures. The more he gives to others, the more he has for his own. - Lao Tzu",
	"Happiness is the absence of the striving for happiness. - Zhuangzi",
}

// ParseEntry splits raw quote text into quote and author on the LAST " - "
// delimiter. Text without a delimiter yields a nil author.
func ParseEntry(raw string) models.Wisdom {
	lastDash := strings.LastIndex(raw, " - ")
	if lastDash == -1 {
		return models.Wisdom{Text: strings.TrimSpace(raw)}
	}

	author := strings.TrimSpace(raw[lastDash+3:])
	return models.Wisdom{
		Text:   strings.TrimSpace(raw[:lastDash]),
		Author: &author,
	}
}

// Wisdom inserts the built-in entries when the table is empty. Seeding an
// already-populated store is a no-op.
func Wisdom(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Wisdom{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, raw := range defaultWisdom {
		entry := ParseEntry(raw)
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d built-in wisdom entries", len(defaultWisdom))
	return nil
}
