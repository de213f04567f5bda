package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormMerchantRepository struct {
	store *gormStore
}

func (r *gormMerchantRepository) Upsert(ctx context.Context, merchant *models.Merchant) error {
	return r.store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(merchant).Error
}

func (r *gormMerchantRepository) GetByUserID(ctx context.Context, userID uint) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.store.db.WithContext(ctx).Where("user_id = ?", userID).First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}
