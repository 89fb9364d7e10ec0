package dashboard

import (
	"time"

	"finance-tracker-go/internal/domain/budgets"
	"finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/internal/domain/incomes"
	"github.com/shopspring/decimal"
)

const (
	RecentLimit = 5

	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#6b7280"
)

type CategorySum struct {
	CategoryID string
	Total      decimal.Decimal
}

type CategoryTotal struct {
	CategoryID    string
	CategoryName  string
	CategoryColor string
	Total         decimal.Decimal
}

type BudgetLine struct {
	budgets.BudgetWithStatus
	CategoryName  string
	CategoryColor string
}

type RecentExpense struct {
	expenses.Expense
	CategoryName  string
	CategoryColor string
}

type Summary struct {
	From               time.Time
	To                 time.Time
	TotalExpenses      decimal.Decimal
	TotalIncome        decimal.Decimal
	Balance            decimal.Decimal
	ExpensesByCategory []CategoryTotal
	BudgetStatus       []BudgetLine
	ExceededBudgets    []BudgetLine
	RecentExpenses     []RecentExpense
	RecentIncomes      []incomes.Income
}
