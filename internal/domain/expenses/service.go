package expenses

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"finance-tracker-go/internal/domain/calendar"
	"finance-tracker-go/internal/domain/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	maxCategoryNameLength = 255
	maxDescriptionLength  = 1000

	categoryNameTakenMessage = "You already have a category with this name."
	invalidCategoryMessage   = "The selected category is invalid."
)

var (
	minAmount          = decimal.New(1, -2)
	categoryColorRegex = regexp.MustCompile(`^#[a-fA-F0-9]{6}$`)
)

// DatePolicy tells whether a user may record entries dated after today.
type DatePolicy interface {
	AllowFutureDates(ctx context.Context, userID string) (bool, error)
}

type Config struct {
	Location      *time.Location
	Cache         CategoriesCache
	CategoriesTTL time.Duration
}

type Service struct {
	repo          Repository
	dates         DatePolicy
	cache         CategoriesCache
	categoriesTTL time.Duration
	group         singleflight.Group
	generations   categoryGenerations
	now           func() time.Time
}

func NewService(repo Repository, dates DatePolicy, cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	cache := cfg.Cache
	if cache == nil || cfg.CategoriesTTL <= 0 {
		cache = noopCategoriesCache{}
	}

	return &Service{
		repo:          repo,
		dates:         dates,
		cache:         cache,
		categoriesTTL: cfg.CategoriesTTL,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

func (s *Service) ListExpenses(ctx context.Context, userID string, filter ListFilter) ([]ExpenseWithCategory, int64, error) {
	items, total, err := s.repo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	if len(items) == 0 {
		return []ExpenseWithCategory{}, total, nil
	}

	categories, err := s.CategoriesByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]ExpenseWithCategory, 0, len(items))
	for _, expense := range items {
		result = append(result, withCategory(expense, categories))
	}

	return result, total, nil
}

func (s *Service) GetExpense(ctx context.Context, userID, expenseID string) (*ExpenseWithCategory, error) {
	expense, err := s.repo.GetExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	return s.attachCategory(ctx, *expense)
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*ExpenseWithCategory, error) {
	description, err := s.validateExpense(ctx, input.UserID, input.CategoryID, input.Date, input.Amount, input.Description)
	if err != nil {
		return nil, err
	}

	expense := Expense{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
		Date:        calendar.DateOf(input.Date),
		Amount:      input.Amount.Round(2),
		Description: description,
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	return s.attachCategory(ctx, expense)
}

func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*ExpenseWithCategory, error) {
	expense, err := s.repo.GetExpenseByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	description, err := s.validateExpense(ctx, input.UserID, input.CategoryID, input.Date, input.Amount, input.Description)
	if err != nil {
		return nil, err
	}

	expense.CategoryID = input.CategoryID
	expense.Date = calendar.DateOf(input.Date)
	expense.Amount = input.Amount.Round(2)
	expense.Description = description

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return s.attachCategory(ctx, *expense)
}

func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	deleted, err := s.repo.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

// PurgeExpense removes the row for good, whether or not it was soft-deleted
// before.
func (s *Service) PurgeExpense(ctx context.Context, userID, expenseID string) error {
	purged, err := s.repo.PurgeExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if !purged {
		return ErrExpenseNotFound
	}
	return nil
}

// ListCategories returns the live categories, newest first, with the number
// of live expenses filed under each.
func (s *Service) ListCategories(ctx context.Context, userID string) ([]CategoryWithUsage, error) {
	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountExpensesByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithUsage, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryWithUsage{
			Category:      category,
			ExpensesCount: counts[category.ID],
		})
	}
	return result, nil
}

// CategoriesByID resolves the user's live categories through the cache.
// Concurrent misses for the same user share one database read. The shared
// read outlives the cancellation of the request that started it, and its
// result is not cached when a category write lands meanwhile.
func (s *Service) CategoriesByID(ctx context.Context, userID string) (map[string]Category, error) {
	categories, ok := s.cache.GetByUserID(ctx, userID)
	if !ok {
		value, err, _ := s.group.Do(userID, func() (any, error) {
			fillCtx := context.WithoutCancel(ctx)
			generation := s.generations.current(userID)
			loaded, err := s.repo.ListCategories(fillCtx, userID)
			if err != nil {
				return nil, err
			}
			if s.generations.current(userID) == generation {
				s.cache.SetByUserID(fillCtx, userID, loaded, s.categoriesTTL)
				if s.generations.current(userID) != generation {
					s.cache.DeleteByUserID(fillCtx, userID)
				}
			}
			return loaded, nil
		})
		if err != nil {
			return nil, err
		}
		categories = value.([]Category)
	}

	result := make(map[string]Category, len(categories))
	for _, category := range categories {
		result[category.ID] = category
	}
	return result, nil
}

func (s *Service) invalidateCategories(ctx context.Context, userID string) {
	s.generations.bump(userID)
	s.group.Forget(userID)
	s.cache.DeleteByUserID(ctx, userID)
}

func (s *Service) CategoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	if uuid.Validate(categoryID) != nil {
		return false, nil
	}
	return s.repo.CategoryExists(ctx, userID, categoryID)
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	verr := &validation.Error{}
	name := validateCategoryName(verr, input.Name)
	color := normalizeCategoryColor(verr, input.Color)

	if !verr.HasErrors() {
		count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, "")
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, categoryNameTaken()
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	category := Category{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		Name:   name,
		Color:  color,
	}

	if err := s.repo.CreateCategories(ctx, []Category{category}); err != nil {
		return nil, translateNameConflict(err)
	}

	s.invalidateCategories(ctx, input.UserID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	verr := &validation.Error{}
	name := validateCategoryName(verr, input.Name)
	var color *string
	if input.Color.Set {
		color = normalizeCategoryColor(verr, input.Color.Value)
	}

	if !verr.HasErrors() {
		count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, categoryNameTaken()
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	category.Name = name
	if input.Color.Set {
		category.Color = color
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, translateNameConflict(err)
	}

	s.invalidateCategories(ctx, input.UserID)
	return category, nil
}

// DeleteCategory refuses while live expenses still reference the category.
// Budgets on the category are deleted together with it.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, userID, categoryID); err != nil {
			return err
		}

		inUse, err := tx.CountExpensesByCategoryID(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}

		if _, err := tx.DeleteBudgetsByCategoryID(ctx, userID, categoryID); err != nil {
			return err
		}

		deleted, err := tx.DeleteCategory(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCategories(ctx, userID)
	return nil
}

// SeedDefaultCategories gives a new user the starter set of categories.
func (s *Service) SeedDefaultCategories(ctx context.Context, userID string) error {
	categories := make([]Category, 0, len(DefaultCategories))
	for _, item := range DefaultCategories {
		color := item.Color
		categories = append(categories, Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      item.Name,
			Color:     &color,
			IsDefault: true,
		})
	}

	if err := s.repo.CreateCategories(ctx, categories); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}

	s.invalidateCategories(ctx, userID)
	return nil
}

func (s *Service) attachCategory(ctx context.Context, expense Expense) (*ExpenseWithCategory, error) {
	categories, err := s.CategoriesByID(ctx, expense.UserID)
	if err != nil {
		return nil, err
	}
	item := withCategory(expense, categories)
	return &item, nil
}

func withCategory(expense Expense, categories map[string]Category) ExpenseWithCategory {
	item := ExpenseWithCategory{Expense: expense}
	if category, ok := categories[expense.CategoryID]; ok {
		item.Category = &category
	}
	return item
}

func (s *Service) validateExpense(ctx context.Context, userID, categoryID string, date time.Time, amount decimal.Decimal, description *string) (*string, error) {
	verr := &validation.Error{}

	if strings.TrimSpace(categoryID) == "" {
		verr.Add("category_id", "The category field is required.")
	} else {
		ok, err := s.CategoryExists(ctx, userID, categoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			verr.Add("category_id", invalidCategoryMessage)
		}
	}

	if err := s.validateDate(ctx, verr, userID, date); err != nil {
		return nil, err
	}

	if amount.LessThan(minAmount) {
		verr.Add("amount", "Amount must be greater than zero.")
	}

	description = normalizeOptionalText(description)
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		verr.Add("description", fmt.Sprintf("The description may not be greater than %d characters.", maxDescriptionLength))
	}

	return description, verr.OrNil()
}

func (s *Service) validateDate(ctx context.Context, verr *validation.Error, userID string, date time.Time) error {
	if date.IsZero() {
		verr.Add("date", "The date field is required.")
		return nil
	}

	allowFuture, err := s.dates.AllowFutureDates(ctx, userID)
	if err != nil {
		return err
	}
	if !allowFuture && calendar.DateOf(date).After(calendar.DateOf(s.now())) {
		verr.Add("date", "Date cannot be in the future.")
	}
	return nil
}

func validateCategoryName(verr *validation.Error, value string) string {
	name := strings.TrimSpace(value)
	if name == "" {
		verr.Add("name", "The name field is required.")
		return ""
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		verr.Add("name", fmt.Sprintf("The name may not be greater than %d characters.", maxCategoryNameLength))
	}
	return name
}

func normalizeCategoryColor(verr *validation.Error, value *string) *string {
	if value == nil {
		return nil
	}

	color := strings.TrimSpace(*value)
	if color == "" {
		return nil
	}
	if !categoryColorRegex.MatchString(color) {
		verr.Add("color", "Color must be a valid hex color code (e.g., #ff5733).")
		return nil
	}
	return &color
}

func normalizeOptionalText(value *string) *string {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}
	return &text
}

func categoryNameTaken() error {
	return validation.Wrap(ErrCategoryNameTaken, "name", categoryNameTakenMessage)
}

func translateNameConflict(err error) error {
	if errors.Is(err, ErrCategoryNameTaken) {
		return categoryNameTaken()
	}
	return err
}
