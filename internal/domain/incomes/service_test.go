package incomes

import (
	"context"
	"strings"
	"testing"
	"time"

	"finance-tracker-go/internal/domain/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA = "aaaaaaaa-0000-0000-0000-000000000001"
	userB = "bbbbbbbb-0000-0000-0000-000000000002"
)

type fakeIncomesRepo struct {
	incomes map[string]*Income
	deleted map[string]bool
}

func newFakeIncomesRepo() *fakeIncomesRepo {
	return &fakeIncomesRepo{incomes: make(map[string]*Income), deleted: make(map[string]bool)}
}

func (r *fakeIncomesRepo) ListIncomes(ctx context.Context, userID string, filter ListFilter) ([]Income, int64, error) {
	var items []Income
	for id, income := range r.incomes {
		if income.UserID == userID && !r.deleted[id] {
			items = append(items, *income)
		}
	}
	return items, int64(len(items)), nil
}

func (r *fakeIncomesRepo) GetIncomeByID(ctx context.Context, userID, incomeID string) (*Income, error) {
	income, ok := r.incomes[incomeID]
	if !ok || income.UserID != userID || r.deleted[incomeID] {
		return nil, ErrIncomeNotFound
	}
	copied := *income
	return &copied, nil
}

func (r *fakeIncomesRepo) CreateIncome(ctx context.Context, income *Income) error {
	copied := *income
	r.incomes[income.ID] = &copied
	return nil
}

func (r *fakeIncomesRepo) UpdateIncome(ctx context.Context, income *Income) error {
	copied := *income
	r.incomes[income.ID] = &copied
	return nil
}

func (r *fakeIncomesRepo) DeleteIncome(ctx context.Context, userID, incomeID string) (bool, error) {
	income, ok := r.incomes[incomeID]
	if !ok || income.UserID != userID || r.deleted[incomeID] {
		return false, nil
	}
	r.deleted[incomeID] = true
	return true, nil
}

func (r *fakeIncomesRepo) PurgeIncome(ctx context.Context, userID, incomeID string) (bool, error) {
	income, ok := r.incomes[incomeID]
	if !ok || income.UserID != userID {
		return false, nil
	}
	delete(r.incomes, incomeID)
	delete(r.deleted, incomeID)
	return true, nil
}

type staticDatePolicy bool

func (p staticDatePolicy) AllowFutureDates(context.Context, string) (bool, error) {
	return bool(p), nil
}

func newTestService(repo Repository, allowFuture bool) *Service {
	service := NewService(repo, staticDatePolicy(allowFuture), time.UTC)
	service.now = func() time.Time { return time.Date(2024, 5, 15, 23, 59, 0, 0, time.UTC) }
	return service
}

func TestCreateIncome(t *testing.T) {
	repo := newFakeIncomesRepo()
	service := newTestService(repo, false)

	source := " Salary "
	created, err := service.CreateIncome(context.Background(), IncomeInput{
		UserID: userA,
		Date:   time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("2500"),
		Source: &source,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Source)
	assert.Equal(t, "Salary", *created.Source)
	assert.Nil(t, created.Description)
	assert.Len(t, repo.incomes, 1)
}

func TestCreateIncomeValidation(t *testing.T) {
	service := newTestService(newFakeIncomesRepo(), false)

	source := strings.Repeat("s", maxSourceLength+1)
	_, err := service.CreateIncome(context.Background(), IncomeInput{
		UserID: userA,
		Date:   time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC),
		Amount: decimal.Zero,
		Source: &source,
	})
	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, "Date cannot be in the future.", fields["date"])
	assert.Equal(t, "Amount must be greater than zero.", fields["amount"])
	assert.Contains(t, fields, "source")

	_, err = service.CreateIncome(context.Background(), IncomeInput{UserID: userA, Amount: decimal.NewFromInt(1)})
	fields, ok = validation.FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, "The date field is required.", fields["date"])
}

func TestFutureIncomeAllowedWhenEnabled(t *testing.T) {
	service := newTestService(newFakeIncomesRepo(), true)

	_, err := service.CreateIncome(context.Background(), IncomeInput{
		UserID: userA,
		Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
}

func TestUpdateDeletePurgeIncome(t *testing.T) {
	repo := newFakeIncomesRepo()
	service := newTestService(repo, false)
	ctx := context.Background()

	created, err := service.CreateIncome(ctx, IncomeInput{UserID: userA, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = service.UpdateIncome(ctx, created.ID, IncomeInput{UserID: userB, Date: created.Date, Amount: decimal.NewFromInt(20)})
	require.ErrorIs(t, err, ErrIncomeNotFound)

	updated, err := service.UpdateIncome(ctx, created.ID, IncomeInput{UserID: userA, Date: created.Date, Amount: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.Equal(t, "20.00", updated.Amount.StringFixed(2))

	require.NoError(t, service.DeleteIncome(ctx, userA, created.ID))
	require.ErrorIs(t, service.DeleteIncome(ctx, userA, created.ID), ErrIncomeNotFound)

	items, total, err := service.ListIncomes(ctx, userA, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Zero(t, total)

	require.NoError(t, service.PurgeIncome(ctx, userA, created.ID))
	assert.Empty(t, repo.incomes)
}
