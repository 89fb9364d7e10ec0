package incomes

import "context"

type Repository interface {
	ListIncomes(ctx context.Context, userID string, filter ListFilter) ([]Income, int64, error)
	GetIncomeByID(ctx context.Context, userID, incomeID string) (*Income, error)
	CreateIncome(ctx context.Context, income *Income) error
	UpdateIncome(ctx context.Context, income *Income) error
	DeleteIncome(ctx context.Context, userID, incomeID string) (bool, error)
	PurgeIncome(ctx context.Context, userID, incomeID string) (bool, error)
}
