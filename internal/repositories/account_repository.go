package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormAccountRepository struct {
	store *gormStore
}

func (r *gormAccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.store.db.WithContext(ctx).Create(account).Error
}

func (r *gormAccountRepository) GetByUserID(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	q := r.store.db.WithContext(ctx)
	if r.store.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *gormAccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.store.db.WithContext(ctx).Save(account).Error
}

func (r *gormAccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.store.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error
	return count, err
}
