package budgets

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SpentSummer sums the non-deleted expenses of one category between two
// inclusive dates.
type SpentSummer interface {
	SumSpent(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// ComputeStatus evaluates budget against the expenses of the window that
// contains now.
func ComputeStatus(ctx context.Context, summer SpentSummer, budget Budget, now time.Time) (Status, error) {
	start, end := Window(budget.Period, now)

	spent, err := summer.SumSpent(ctx, budget.UserID, budget.CategoryID, start, end)
	if err != nil {
		return Status{}, fmt.Errorf("sum spent for budget %s: %w", budget.ID, err)
	}

	status := Evaluate(budget.Amount, spent)
	status.PeriodStart = start
	status.PeriodEnd = end
	return status, nil
}

// Evaluate derives the consumption figures for a budget amount.
// Remaining is not clamped and goes negative once the budget is overspent.
func Evaluate(amount, spent decimal.Decimal) Status {
	status := Status{
		Spent:      spent,
		Remaining:  amount.Sub(spent),
		IsExceeded: spent.GreaterThan(amount),
	}

	if amount.Sign() <= 0 {
		return status
	}

	percentage, _ := spent.Div(amount).Mul(hundred).Float64()
	if percentage > 100 {
		percentage = 100
	}
	status.PercentageUsed = percentage
	return status
}
