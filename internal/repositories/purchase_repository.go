package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPurchaseRepository struct {
	store *gormStore
}

func (r *gormPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.store.db.WithContext(ctx).Create(purchase).Error
}

func (r *gormPurchaseRepository) GetByID(ctx context.Context, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	q := r.store.db.WithContext(ctx)
	if r.store.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *gormPurchaseRepository) ListByConsumer(ctx context.Context, consumerID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.store.db.WithContext(ctx).
		Where("consumer_id = ?", consumerID).
		Order("id ASC").
		Find(&purchases).Error
	return purchases, err
}

func (r *gormPurchaseRepository) Update(ctx context.Context, purchase *models.Purchase) error {
	return r.store.db.WithContext(ctx).Save(purchase).Error
}

func (r *gormPurchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.store.db.WithContext(ctx).Model(&models.Purchase{}).Count(&count).Error
	return count, err
}

func (r *gormPurchaseRepository) SumOutstanding(ctx context.Context) (int64, error) {
	var total int64
	err := r.store.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("status = ?", models.PurchaseStatusActive).
		Select("COALESCE(SUM(remaining_balance), 0)").
		Scan(&total).Error
	return total, err
}
