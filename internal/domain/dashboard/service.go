package dashboard

import (
	"context"
	"sort"
	"time"

	"finance-tracker-go/internal/domain/budgets"
	"finance-tracker-go/internal/domain/calendar"
	"finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/internal/domain/incomes"
)

type BudgetEvaluator interface {
	ListBudgets(ctx context.Context, userID string) ([]budgets.BudgetWithStatus, error)
}

type CategoryLookup interface {
	CategoriesByID(ctx context.Context, userID string) (map[string]expenses.Category, error)
}

type Service struct {
	repo       Repository
	budgets    BudgetEvaluator
	categories CategoryLookup
	now        func() time.Time
}

func NewService(repo Repository, budgets BudgetEvaluator, categories CategoryLookup, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		budgets:    budgets,
		categories: categories,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

// BuildSummary aggregates the user's ledger for the inclusive date range.
// A missing bound defaults to the matching bound of the current month.
// Budget status and the recent lists ignore the range.
func (s *Service) BuildSummary(ctx context.Context, userID string, from, to *time.Time) (Summary, error) {
	start, end := s.resolveRange(from, to)

	totalExpenses, err := s.repo.SumExpenses(ctx, userID, start, end)
	if err != nil {
		return Summary{}, err
	}

	totalIncome, err := s.repo.SumIncomes(ctx, userID, start, end)
	if err != nil {
		return Summary{}, err
	}

	sums, err := s.repo.ExpensesByCategory(ctx, userID, start, end)
	if err != nil {
		return Summary{}, err
	}

	categories, err := s.categories.CategoriesByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	evaluated, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	recentExpenses, err := s.repo.RecentExpenses(ctx, userID, RecentLimit)
	if err != nil {
		return Summary{}, err
	}

	recentIncomes, err := s.repo.RecentIncomes(ctx, userID, RecentLimit)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		From:               start,
		To:                 end,
		TotalExpenses:      totalExpenses,
		TotalIncome:        totalIncome,
		Balance:            totalIncome.Sub(totalExpenses),
		ExpensesByCategory: make([]CategoryTotal, 0, len(sums)),
		BudgetStatus:       make([]BudgetLine, 0, len(evaluated)),
		ExceededBudgets:    []BudgetLine{},
		RecentExpenses:     make([]RecentExpense, 0, len(recentExpenses)),
		RecentIncomes:      recentIncomes,
	}
	if summary.RecentIncomes == nil {
		summary.RecentIncomes = []incomes.Income{}
	}

	for _, sum := range sums {
		name, color := describeCategory(categories, sum.CategoryID)
		summary.ExpensesByCategory = append(summary.ExpensesByCategory, CategoryTotal{
			CategoryID:    sum.CategoryID,
			CategoryName:  name,
			CategoryColor: color,
			Total:         sum.Total,
		})
	}
	sort.SliceStable(summary.ExpensesByCategory, func(i, j int) bool {
		left, right := summary.ExpensesByCategory[i], summary.ExpensesByCategory[j]
		if cmp := left.Total.Cmp(right.Total); cmp != 0 {
			return cmp > 0
		}
		return left.CategoryID < right.CategoryID
	})

	for _, item := range evaluated {
		name, color := describeCategory(categories, item.CategoryID)
		line := BudgetLine{BudgetWithStatus: item, CategoryName: name, CategoryColor: color}
		summary.BudgetStatus = append(summary.BudgetStatus, line)
		if item.Status.IsExceeded {
			summary.ExceededBudgets = append(summary.ExceededBudgets, line)
		}
	}

	for _, expense := range recentExpenses {
		name, color := describeCategory(categories, expense.CategoryID)
		summary.RecentExpenses = append(summary.RecentExpenses, RecentExpense{
			Expense:       expense,
			CategoryName:  name,
			CategoryColor: color,
		})
	}

	return summary, nil
}

func (s *Service) resolveRange(from, to *time.Time) (time.Time, time.Time) {
	monthStart, monthEnd := calendar.MonthBounds(s.now())

	start := monthStart
	if from != nil {
		start = calendar.DateOf(*from)
	}
	end := monthEnd
	if to != nil {
		end = calendar.DateOf(*to)
	}
	return start, end
}

// describeCategory falls back to a neutral label for categories that no
// longer resolve, such as deleted ones.
func describeCategory(categories map[string]expenses.Category, categoryID string) (string, string) {
	category, ok := categories[categoryID]
	if !ok {
		return UnknownCategoryName, UnknownCategoryColor
	}
	color := UnknownCategoryColor
	if category.Color != nil {
		color = *category.Color
	}
	return category.Name, color
}
