package repository

import (
	"context"

	"wisdomwell/internal/models"

	"gorm.io/gorm"
)

// WisdomRepository defines persistence operations for wisdom entries.
type WisdomRepository interface {
	Random(ctx context.Context) (*models.Wisdom, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, entry *models.Wisdom) error
}

type wisdomRepository struct {
	db *gorm.DB
}

// NewWisdomRepository returns a new WisdomRepository implementation.
func NewWisdomRepository(db *gorm.DB) WisdomRepository {
	return &wisdomRepository{db: db}
}

// Random returns one entry sampled uniformly, or nil when the table is empty.
// random() is shared by Postgres and the sqlite test driver.
func (r *wisdomRepository) Random(ctx context.Context) (*models.Wisdom, error) {
	var entries []models.Wisdom
	if err := r.db.WithContext(ctx).Order("random()").Limit(1).Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (r *wisdomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Wisdom{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *wisdomRepository) Create(ctx context.Context, entry *models.Wisdom) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
