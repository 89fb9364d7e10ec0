package budgets

import "context"

type Repository interface {
	SpentSummer
	ListBudgets(ctx context.Context, userID string) ([]Budget, error)
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*Budget, error)
	ExistsBudget(ctx context.Context, userID, categoryID string, period Period, excludeID string) (bool, error)
	CreateBudget(ctx context.Context, budget *Budget) error
	UpdateBudget(ctx context.Context, budget *Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error)
}
