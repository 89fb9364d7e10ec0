package budgets

import (
	"context"
	"errors"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const duplicateBudgetMessage = "A budget for this category and period already exists."

var minAmount = decimal.New(1, -2)

// CategoryChecker reports whether a category exists, belongs to the user and
// has not been deleted.
type CategoryChecker interface {
	CategoryExists(ctx context.Context, userID, categoryID string) (bool, error)
}

type Service struct {
	repo       Repository
	categories CategoryChecker
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryChecker, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		categories: categories,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

// DuplicateError is the rejection returned when the (category, period) pair
// is already taken by another live budget.
func DuplicateError() error {
	return validation.Wrap(ErrBudgetExists, "category_id", duplicateBudgetMessage)
}

func (s *Service) ListBudgets(ctx context.Context, userID string) ([]BudgetWithStatus, error) {
	items, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]BudgetWithStatus, 0, len(items))
	for _, budget := range items {
		status, err := ComputeStatus(ctx, s.repo, budget, now)
		if err != nil {
			return nil, err
		}
		result = append(result, BudgetWithStatus{Budget: budget, Status: status})
	}

	return result, nil
}

func (s *Service) GetBudget(ctx context.Context, userID, budgetID string) (*BudgetWithStatus, error) {
	budget, err := s.repo.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.withStatus(ctx, *budget)
}

func (s *Service) CreateBudget(ctx context.Context, input CreateBudgetInput) (*BudgetWithStatus, error) {
	if err := s.validateInput(ctx, input.UserID, input.CategoryID, input.Amount, input.Period); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBudget(ctx, input.UserID, input.CategoryID, input.Period, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, DuplicateError()
	}

	budget := Budget{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount.Round(2),
		Period:     input.Period,
	}

	if err := s.repo.CreateBudget(ctx, &budget); err != nil {
		return nil, translateConflict(err)
	}

	return s.withStatus(ctx, budget)
}

func (s *Service) UpdateBudget(ctx context.Context, input UpdateBudgetInput) (*BudgetWithStatus, error) {
	budget, err := s.repo.GetBudgetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(ctx, input.UserID, input.CategoryID, input.Amount, input.Period); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBudget(ctx, input.UserID, input.CategoryID, input.Period, budget.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, DuplicateError()
	}

	budget.CategoryID = input.CategoryID
	budget.Amount = input.Amount.Round(2)
	budget.Period = input.Period

	if err := s.repo.UpdateBudget(ctx, budget); err != nil {
		return nil, translateConflict(err)
	}

	return s.withStatus(ctx, *budget)
}

func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	deleted, err := s.repo.DeleteBudget(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *Service) withStatus(ctx context.Context, budget Budget) (*BudgetWithStatus, error) {
	status, err := ComputeStatus(ctx, s.repo, budget, s.now())
	if err != nil {
		return nil, err
	}
	return &BudgetWithStatus{Budget: budget, Status: status}, nil
}

func (s *Service) validateInput(ctx context.Context, userID, categoryID string, amount decimal.Decimal, period Period) error {
	verr := &validation.Error{}

	if strings.TrimSpace(categoryID) == "" {
		verr.Add("category_id", "The category field is required.")
	} else {
		ok, err := s.categoryExists(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("category_id", "The selected category is invalid.")
		}
	}

	if amount.LessThan(minAmount) {
		verr.Add("amount", "Budget amount must be greater than zero.")
	}

	if !period.Valid() {
		verr.Add("period", "Period must be either weekly or monthly.")
	}

	return verr.OrNil()
}

func (s *Service) categoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	if uuid.Validate(categoryID) != nil {
		return false, nil
	}
	return s.categories.CategoryExists(ctx, userID, categoryID)
}

// translateConflict maps the unique index violation raised when a concurrent
// request took the same pair between the check and the write.
func translateConflict(err error) error {
	if errors.Is(err, ErrBudgetExists) {
		return DuplicateError()
	}
	return err
}
