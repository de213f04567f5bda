package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"

	"gorm.io/gorm"
)

type gormPaymentRepository struct {
	store *gormStore
}

func (r *gormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.store.db.WithContext(ctx).Create(payment).Error
}

func (r *gormPaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.store.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepository) SumCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.store.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
