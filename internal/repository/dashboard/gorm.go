package dashboard

import (
	"context"
	"time"

	dashboarddomain "finance-tracker-go/internal/domain/dashboard"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	incomesdomain "finance-tracker-go/internal/domain/incomes"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) SumExpenses(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, &expensesdomain.Expense{}, userID, from, to)
}

func (r *GormRepository) SumIncomes(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, &incomesdomain.Income{}, userID, from, to)
}

// sum goes through the model so the soft-delete scope applies.
// SQLite aggregates NUMERIC columns as REAL, so totals are rounded back to
// the two places every stored amount has.
func (r *GormRepository) sum(ctx context.Context, model interface{}, userID string, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.WithContext(ctx).
		Model(model).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total.Round(2), nil
}

func (r *GormRepository) ExpensesByCategory(ctx context.Context, userID string, from, to time.Time) ([]dashboarddomain.CategorySum, error) {
	var rows []struct {
		CategoryID string
		Total      decimal.Decimal
	}

	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Select("category_id, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from, to).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]dashboarddomain.CategorySum, 0, len(rows))
	for _, row := range rows {
		result = append(result, dashboarddomain.CategorySum{CategoryID: row.CategoryID, Total: row.Total.Round(2)})
	}
	return result, nil
}

func (r *GormRepository) RecentExpenses(ctx context.Context, userID string, limit int) ([]expensesdomain.Expense, error) {
	var items []expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, created_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository) RecentIncomes(ctx context.Context, userID string, limit int) ([]incomesdomain.Income, error) {
	var items []incomesdomain.Income
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, created_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
