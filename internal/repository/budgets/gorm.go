package budgets

import (
	"context"
	"errors"
	"time"

	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// SumSpent rounds to cents since SQLite sums NUMERIC columns as REAL.
func (r *GormRepository) SumSpent(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("date >= ? AND date <= ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total.Round(2), nil
}

func (r *GormRepository) ListBudgets(ctx context.Context, userID string) ([]budgetsdomain.Budget, error) {
	var items []budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository) GetBudgetByID(ctx context.Context, userID, budgetID string) (*budgetsdomain.Budget, error) {
	var budget budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetsdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *GormRepository) ExistsBudget(ctx context.Context, userID, categoryID string, period budgetsdomain.Period, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("user_id = ? AND category_id = ? AND period = ?", userID, categoryID, period)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CreateBudget(ctx context.Context, budget *budgetsdomain.Budget) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(budget).Error)
}

func (r *GormRepository) UpdateBudget(ctx context.Context, budget *budgetsdomain.Budget) error {
	err := r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"category_id": budget.CategoryID,
			"amount":      budget.Amount,
			"period":      budget.Period,
			"updated_at":  time.Now().UTC(),
		}).Error
	return translateDuplicate(err)
}

func (r *GormRepository) DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetsdomain.Budget{}, "user_id = ? AND id = ?", userID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return budgetsdomain.ErrBudgetExists
	}
	return err
}
