package dashboard

import (
	"context"
	"time"

	"finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/internal/domain/incomes"
	"github.com/shopspring/decimal"
)

type Repository interface {
	SumExpenses(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	SumIncomes(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategorySum, error)
	RecentExpenses(ctx context.Context, userID string, limit int) ([]expenses.Expense, error)
	RecentIncomes(ctx context.Context, userID string, limit int) ([]incomes.Income, error)
}
