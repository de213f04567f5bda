package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormAutopayRepository struct {
	store *gormStore
}

func (r *gormAutopayRepository) Upsert(ctx context.Context, autopay *models.Autopay) error {
	return r.store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(autopay).Error
}

func (r *gormAutopayRepository) GetByUserID(ctx context.Context, userID uint) (*models.Autopay, error) {
	var autopay models.Autopay
	if err := r.store.db.WithContext(ctx).Where("user_id = ?", userID).First(&autopay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &autopay, nil
}
