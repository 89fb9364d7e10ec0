package incomes

import (
	"context"
	"testing"

	"finance-tracker-go/internal/db/dbtest"
	"finance-tracker-go/internal/domain/calendar"
	incomesdomain "finance-tracker-go/internal/domain/incomes"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA = "aaaaaaaa-0000-0000-0000-000000000001"
	userB = "bbbbbbbb-0000-0000-0000-000000000002"
)

func setup(t *testing.T) *GormRepository {
	t.Helper()
	conn := dbtest.NewSQLite(t)
	for _, id := range []string{userA, userB} {
		require.NoError(t, conn.Exec("INSERT INTO users (id) VALUES (?)", id).Error)
	}
	return NewGorm(conn)
}

func newIncome(t *testing.T, repo *GormRepository, userID, day, amount string) *incomesdomain.Income {
	t.Helper()
	date, err := calendar.ParseDate(day)
	require.NoError(t, err)
	income := &incomesdomain.Income{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   date,
		Amount: decimal.RequireFromString(amount),
	}
	require.NoError(t, repo.CreateIncome(context.Background(), income))
	return income
}

func TestListIncomesFiltersByDateAndUser(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	newIncome(t, repo, userA, "2024-01-01", "10")
	newIncome(t, repo, userA, "2024-01-15", "20")
	newIncome(t, repo, userA, "2024-02-01", "30")
	newIncome(t, repo, userB, "2024-01-15", "40")

	from, _ := calendar.ParseDate("2024-01-01")
	to, _ := calendar.ParseDate("2024-01-31")
	items, total, err := repo.ListIncomes(ctx, userA, incomesdomain.ListFilter{From: &from, To: &to})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-15", calendar.FormatDate(items[0].Date))
	assert.Equal(t, "2024-01-01", calendar.FormatDate(items[1].Date))

	page, total, err := repo.ListIncomes(ctx, userA, incomesdomain.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-01-15", calendar.FormatDate(page[0].Date))
}

func TestDeleteAndPurgeIncome(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	income := newIncome(t, repo, userA, "2024-01-01", "10")

	deleted, err := repo.DeleteIncome(ctx, userB, income.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteIncome(ctx, userA, income.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetIncomeByID(ctx, userA, income.ID)
	assert.ErrorIs(t, err, incomesdomain.ErrIncomeNotFound)

	purged, err := repo.PurgeIncome(ctx, userA, income.ID)
	require.NoError(t, err)
	assert.True(t, purged)

	purged, err = repo.PurgeIncome(ctx, userA, income.ID)
	require.NoError(t, err)
	assert.False(t, purged)
}

func TestUpdateIncomeIsScopedToOwner(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	income := newIncome(t, repo, userA, "2024-01-01", "10")

	source := "bonus"
	income.Amount = decimal.RequireFromString("12.5")
	income.Source = &source
	require.NoError(t, repo.UpdateIncome(ctx, income))

	stored, err := repo.GetIncomeByID(ctx, userA, income.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, stored.Source)
	assert.Equal(t, "bonus", *stored.Source)
}
