package expenses

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListExpenses(ctx context.Context, userID string, filter ListFilter) ([]Expense, int64, error)
	GetExpenseByID(ctx context.Context, userID, expenseID string) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error)
	PurgeExpense(ctx context.Context, userID, expenseID string) (bool, error)
	ListCategories(ctx context.Context, userID string) ([]Category, error)
	CountExpensesByCategory(ctx context.Context, userID string) (map[string]int64, error)
	CategoryExists(ctx context.Context, userID, categoryID string) (bool, error)
	CreateCategories(ctx context.Context, categories []Category) error
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	CountExpensesByCategoryID(ctx context.Context, userID, categoryID string) (int64, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error)
	DeleteBudgetsByCategoryID(ctx context.Context, userID, categoryID string) (int64, error)
}
