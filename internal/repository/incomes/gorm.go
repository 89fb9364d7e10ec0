package incomes

import (
	"context"
	"errors"
	"time"

	incomesdomain "finance-tracker-go/internal/domain/incomes"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListIncomes(ctx context.Context, userID string, filter incomesdomain.ListFilter) ([]incomesdomain.Income, int64, error) {
	query := r.db.WithContext(ctx).Model(&incomesdomain.Income{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []incomesdomain.Income
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepository) GetIncomeByID(ctx context.Context, userID, incomeID string) (*incomesdomain.Income, error) {
	var income incomesdomain.Income
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, incomeID).
		First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, incomesdomain.ErrIncomeNotFound
		}
		return nil, err
	}
	return &income, nil
}

func (r *GormRepository) CreateIncome(ctx context.Context, income *incomesdomain.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *GormRepository) UpdateIncome(ctx context.Context, income *incomesdomain.Income) error {
	return r.db.WithContext(ctx).
		Model(&incomesdomain.Income{}).
		Where("id = ? AND user_id = ?", income.ID, income.UserID).
		Updates(map[string]interface{}{
			"date":        income.Date,
			"amount":      income.Amount,
			"source":      income.Source,
			"description": income.Description,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *GormRepository) DeleteIncome(ctx context.Context, userID, incomeID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&incomesdomain.Income{}, "user_id = ? AND id = ?", userID, incomeID)
	return result.RowsAffected > 0, result.Error
}

func (r *GormRepository) PurgeIncome(ctx context.Context, userID, incomeID string) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().Delete(&incomesdomain.Income{}, "user_id = ? AND id = ?", userID, incomeID)
	return result.RowsAffected > 0, result.Error
}
