package budgets

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA     = "aaaaaaaa-0000-0000-0000-000000000001"
	userB     = "bbbbbbbb-0000-0000-0000-000000000002"
	foodID    = "11111111-1111-1111-1111-111111111111"
	travelID  = "22222222-2222-2222-2222-222222222222"
	missingID = "99999999-9999-9999-9999-999999999999"
)

type fakeBudgetsRepo struct {
	fakeSummer
	budgets        map[string]*Budget
	conflictOnSave bool
}

func newFakeBudgetsRepo() *fakeBudgetsRepo {
	return &fakeBudgetsRepo{budgets: make(map[string]*Budget)}
}

func (r *fakeBudgetsRepo) ListBudgets(ctx context.Context, userID string) ([]Budget, error) {
	var result []Budget
	for _, budget := range r.budgets {
		if budget.UserID == userID && !budget.DeletedAt.Valid {
			result = append(result, *budget)
		}
	}
	return result, nil
}

func (r *fakeBudgetsRepo) GetBudgetByID(ctx context.Context, userID, budgetID string) (*Budget, error) {
	budget, ok := r.budgets[budgetID]
	if !ok || budget.UserID != userID || budget.DeletedAt.Valid {
		return nil, ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *fakeBudgetsRepo) ExistsBudget(ctx context.Context, userID, categoryID string, period Period, excludeID string) (bool, error) {
	for _, budget := range r.budgets {
		if budget.DeletedAt.Valid || budget.ID == excludeID {
			continue
		}
		if budget.UserID == userID && budget.CategoryID == categoryID && budget.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBudgetsRepo) CreateBudget(ctx context.Context, budget *Budget) error {
	if r.conflictOnSave {
		return ErrBudgetExists
	}
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *fakeBudgetsRepo) UpdateBudget(ctx context.Context, budget *Budget) error {
	if r.conflictOnSave {
		return ErrBudgetExists
	}
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *fakeBudgetsRepo) DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error) {
	budget, ok := r.budgets[budgetID]
	if !ok || budget.UserID != userID || budget.DeletedAt.Valid {
		return false, nil
	}
	delete(r.budgets, budgetID)
	return true, nil
}

type fakeCategories map[string]string

func (f fakeCategories) CategoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	owner, ok := f[categoryID]
	return ok && owner == userID, nil
}

func newTestService(repo *fakeBudgetsRepo, now time.Time) *Service {
	service := NewService(repo, fakeCategories{foodID: userA, travelID: userA}, time.UTC)
	service.now = func() time.Time { return now }
	return service
}

func TestCreateBudgetReturnsLiveStatus(t *testing.T) {
	repo := newFakeBudgetsRepo()
	repo.expenses = []fakeExpense{
		{userID: userA, categoryID: foodID, date: mustDate(t, "2024-03-02"), amount: dec("40")},
	}
	service := newTestService(repo, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	created, err := service.CreateBudget(context.Background(), CreateBudgetInput{
		UserID:     userA,
		CategoryID: foodID,
		Amount:     dec("100.005"),
		Period:     PeriodMonthly,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "100.01", created.Amount.StringFixed(2))
	assert.True(t, dec("40").Equal(created.Status.Spent))
	assert.Len(t, repo.budgets, 1)
}

func TestCreateBudgetRejectsDuplicatePair(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	_, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)

	_, err = service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("75"), Period: PeriodMonthly})
	require.ErrorIs(t, err, ErrBudgetExists)
	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, duplicateBudgetMessage, fields["category_id"])
	assert.Len(t, repo.budgets, 1)

	// Same category with the other period is a different pair.
	_, err = service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("20"), Period: PeriodWeekly})
	require.NoError(t, err)
}

func TestCreateBudgetAllowedAfterDeletion(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	first, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)
	require.NoError(t, service.DeleteBudget(ctx, userA, first.ID))

	_, err = service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("60"), Period: PeriodMonthly})
	require.NoError(t, err)
}

func TestCreateBudgetTranslatesConstraintViolation(t *testing.T) {
	repo := newFakeBudgetsRepo()
	repo.conflictOnSave = true
	service := newTestService(repo, time.Now())

	_, err := service.CreateBudget(context.Background(), CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.ErrorIs(t, err, ErrBudgetExists)
	_, ok := validation.FieldsOf(err)
	assert.True(t, ok)
}

func TestCreateBudgetValidation(t *testing.T) {
	service := newTestService(newFakeBudgetsRepo(), time.Now())

	_, err := service.CreateBudget(context.Background(), CreateBudgetInput{
		UserID:     userA,
		CategoryID: missingID,
		Amount:     dec("0"),
		Period:     Period("yearly"),
	})
	require.Error(t, err)

	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, "The selected category is invalid.", fields["category_id"])
	assert.Equal(t, "Budget amount must be greater than zero.", fields["amount"])
	assert.Equal(t, "Period must be either weekly or monthly.", fields["period"])
}

func TestCreateBudgetRejectsOtherUsersCategory(t *testing.T) {
	service := newTestService(newFakeBudgetsRepo(), time.Now())

	_, err := service.CreateBudget(context.Background(), CreateBudgetInput{UserID: userB, CategoryID: foodID, Amount: dec("10"), Period: PeriodWeekly})
	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	assert.Contains(t, fields, "category_id")
}

func TestUpdateBudgetToOwnPairSucceeds(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	created, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)

	updated, err := service.UpdateBudget(ctx, UpdateBudgetInput{ID: created.ID, UserID: userA, CategoryID: foodID, Amount: dec("80"), Period: PeriodMonthly})
	require.NoError(t, err)
	assert.Equal(t, "80.00", updated.Amount.StringFixed(2))
}

func TestUpdateBudgetRejectsPairHeldByAnother(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	_, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)
	travel, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: travelID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)

	_, err = service.UpdateBudget(ctx, UpdateBudgetInput{ID: travel.ID, UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.ErrorIs(t, err, ErrBudgetExists)
	assert.Equal(t, travelID, repo.budgets[travel.ID].CategoryID)
}

func TestUpdateBudgetOfAnotherUserIsNotFound(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	created, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)

	_, err = service.UpdateBudget(ctx, UpdateBudgetInput{ID: created.ID, UserID: userB, CategoryID: foodID, Amount: dec("1"), Period: PeriodMonthly})
	require.ErrorIs(t, err, ErrBudgetNotFound)

	err = service.DeleteBudget(ctx, userB, created.ID)
	require.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestListBudgetsFailsWhollyOnStoreError(t *testing.T) {
	repo := newFakeBudgetsRepo()
	service := newTestService(repo, time.Now())
	ctx := context.Background()

	_, err := service.CreateBudget(ctx, CreateBudgetInput{UserID: userA, CategoryID: foodID, Amount: dec("50"), Period: PeriodMonthly})
	require.NoError(t, err)

	repo.err = errors.New("db down")
	items, err := service.ListBudgets(ctx, userA)
	require.Error(t, err)
	assert.Nil(t, items)
}
