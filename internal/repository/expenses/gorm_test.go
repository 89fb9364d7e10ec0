package expenses

import (
	"context"
	"testing"

	"finance-tracker-go/internal/db/dbtest"
	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	"finance-tracker-go/internal/domain/calendar"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	userA = "aaaaaaaa-0000-0000-0000-000000000001"
	userB = "bbbbbbbb-0000-0000-0000-000000000002"
)

func setup(t *testing.T) (*gorm.DB, *GormRepository) {
	t.Helper()
	conn := dbtest.NewSQLite(t)
	for _, id := range []string{userA, userB} {
		require.NoError(t, conn.Exec("INSERT INTO users (id) VALUES (?)", id).Error)
	}
	return conn, NewGorm(conn)
}

func newCategory(t *testing.T, repo *GormRepository, userID, name string) expensesdomain.Category {
	t.Helper()
	category := expensesdomain.Category{ID: uuid.NewString(), UserID: userID, Name: name}
	require.NoError(t, repo.CreateCategories(context.Background(), []expensesdomain.Category{category}))
	return category
}

func newExpense(t *testing.T, repo *GormRepository, userID, categoryID, day, amount string) *expensesdomain.Expense {
	t.Helper()
	date, err := calendar.ParseDate(day)
	require.NoError(t, err)
	expense := &expensesdomain.Expense{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     decimal.RequireFromString(amount),
	}
	require.NoError(t, repo.CreateExpense(context.Background(), expense))
	return expense
}

func TestListExpensesFiltersAndPaginates(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()
	food := newCategory(t, repo, userA, "Food")
	rent := newCategory(t, repo, userA, "Rent")

	newExpense(t, repo, userA, food.ID, "2024-01-05", "1.25")
	newExpense(t, repo, userA, food.ID, "2024-01-20", "2.50")
	newExpense(t, repo, userA, rent.ID, "2024-01-10", "700")
	newExpense(t, repo, userA, food.ID, "2024-02-01", "3")
	newExpense(t, repo, userB, food.ID, "2024-01-06", "4")
	deleted := newExpense(t, repo, userA, food.ID, "2024-01-07", "5")
	ok, err := repo.DeleteExpense(ctx, userA, deleted.ID)
	require.NoError(t, err)
	require.True(t, ok)

	from, _ := calendar.ParseDate("2024-01-01")
	to, _ := calendar.ParseDate("2024-01-31")
	items, total, err := repo.ListExpenses(ctx, userA, expensesdomain.ListFilter{From: &from, To: &to, CategoryID: food.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-20", calendar.FormatDate(items[0].Date))
	assert.Equal(t, "2.50", items[0].Amount.StringFixed(2))

	items, total, err = repo.ListExpenses(ctx, userA, expensesdomain.ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-10", calendar.FormatDate(items[0].Date))
}

func TestSoftDeletedExpenseIsHiddenUntilPurged(t *testing.T) {
	conn, repo := setup(t)
	ctx := context.Background()
	food := newCategory(t, repo, userA, "Food")
	expense := newExpense(t, repo, userA, food.ID, "2024-01-05", "10")

	ok, err := repo.DeleteExpense(ctx, userB, expense.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteExpense(ctx, userA, expense.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetExpenseByID(ctx, userA, expense.ID)
	require.ErrorIs(t, err, expensesdomain.ErrExpenseNotFound)

	var raw int64
	require.NoError(t, conn.Unscoped().Model(&expensesdomain.Expense{}).Count(&raw).Error)
	assert.EqualValues(t, 1, raw)

	ok, err = repo.PurgeExpense(ctx, userA, expense.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, conn.Unscoped().Model(&expensesdomain.Expense{}).Count(&raw).Error)
	assert.Zero(t, raw)
}

func TestCategoryNameUniqueAmongLiveCategories(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()
	food := newCategory(t, repo, userA, "Food")

	err := repo.CreateCategories(ctx, []expensesdomain.Category{{ID: uuid.NewString(), UserID: userA, Name: "FOOD"}})
	require.ErrorIs(t, err, expensesdomain.ErrCategoryNameTaken)

	newCategory(t, repo, userB, "Food")

	count, err := repo.CountCategoriesByName(ctx, userA, "food", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	count, err = repo.CountCategoriesByName(ctx, userA, "food", food.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	ok, err := repo.DeleteCategory(ctx, userA, food.ID)
	require.NoError(t, err)
	require.True(t, ok)

	exists, err := repo.CategoryExists(ctx, userA, food.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	newCategory(t, repo, userA, "Food")
}

func TestCategoryUsageCountsAndBudgetCascade(t *testing.T) {
	conn, repo := setup(t)
	ctx := context.Background()
	food := newCategory(t, repo, userA, "Food")
	newExpense(t, repo, userA, food.ID, "2024-01-05", "10")
	gone := newExpense(t, repo, userA, food.ID, "2024-01-06", "10")
	_, err := repo.DeleteExpense(ctx, userA, gone.ID)
	require.NoError(t, err)

	inUse, err := repo.CountExpensesByCategoryID(ctx, userA, food.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inUse)

	counts, err := repo.CountExpensesByCategory(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{food.ID: 1}, counts)

	budget := budgetsdomain.Budget{ID: uuid.NewString(), UserID: userA, CategoryID: food.ID, Amount: decimal.NewFromInt(5), Period: budgetsdomain.PeriodWeekly}
	require.NoError(t, conn.Create(&budget).Error)

	err = repo.Transaction(ctx, func(tx expensesdomain.Repository) error {
		removed, err := tx.DeleteBudgetsByCategoryID(ctx, userA, food.ID)
		assert.EqualValues(t, 1, removed)
		return err
	})
	require.NoError(t, err)

	var live int64
	require.NoError(t, conn.Model(&budgetsdomain.Budget{}).Count(&live).Error)
	assert.Zero(t, live)
}

func TestUpdateCategoryTranslatesNameConflict(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()
	newCategory(t, repo, userA, "Food")
	travel := newCategory(t, repo, userA, "Travel")

	travel.Name = "food"
	require.ErrorIs(t, repo.UpdateCategory(ctx, &travel), expensesdomain.ErrCategoryNameTaken)

	color := "#3b82f6"
	travel.Name = "Trips"
	travel.Color = &color
	require.NoError(t, repo.UpdateCategory(ctx, &travel))

	stored, err := repo.GetCategoryByID(ctx, userA, travel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trips", stored.Name)
	require.NotNil(t, stored.Color)
	assert.Equal(t, color, *stored.Color)

	_, err = repo.GetCategoryByID(ctx, userB, travel.ID)
	require.ErrorIs(t, err, expensesdomain.ErrCategoryNotFound)
}
