package expenses

import (
	"context"
	"errors"
	"time"

	"finance-tracker-go/internal/db"
	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return db.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) ListExpenses(ctx context.Context, userID string, filter expensesdomain.ListFilter) ([]expensesdomain.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
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

	var items []expensesdomain.Expense
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *GormRepository) GetExpenseByID(ctx context.Context, userID, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *GormRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *GormRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"category_id": expense.CategoryID,
			"date":        expense.Date,
			"amount":      expense.Amount,
			"description": expense.Description,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *GormRepository) DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, "user_id = ? AND id = ?", userID, expenseID)
	return result.RowsAffected > 0, result.Error
}

func (r *GormRepository) PurgeExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().Delete(&expensesdomain.Expense{}, "user_id = ? AND id = ?", userID, expenseID)
	return result.RowsAffected > 0, result.Error
}

func (r *GormRepository) ListCategories(ctx context.Context, userID string) ([]expensesdomain.Category, error) {
	var categories []expensesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepository) CountExpensesByCategory(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}

	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Select("category_id, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.CategoryID] = row.Count
	}
	return result, nil
}

func (r *GormRepository) CategoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("user_id = ? AND id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CreateCategories(ctx context.Context, categories []expensesdomain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	err := db.Conn(ctx, r.db).Create(&categories).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return expensesdomain.ErrCategoryNameTaken
	}
	return err
}

func (r *GormRepository) GetCategoryByID(ctx context.Context, userID, categoryID string) (*expensesdomain.Category, error) {
	var category expensesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormRepository) UpdateCategory(ctx context.Context, category *expensesdomain.Category) error {
	err := r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"color":      category.Color,
			"updated_at": time.Now().UTC(),
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return expensesdomain.ErrCategoryNameTaken
	}
	return err
}

func (r *GormRepository) CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("user_id = ? AND lower(name) = lower(?)", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) CountExpensesByCategoryID(ctx context.Context, userID, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Category{}, "user_id = ? AND id = ?", userID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *GormRepository) DeleteBudgetsByCategoryID(ctx context.Context, userID, categoryID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&budgetsdomain.Budget{}, "user_id = ? AND category_id = ?", userID, categoryID)
	return result.RowsAffected, result.Error
}
