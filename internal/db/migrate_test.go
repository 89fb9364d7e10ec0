package db_test

import (
	"testing"

	"finance-tracker-go/internal/db"
	"finance-tracker-go/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	conn := dbtest.NewSQLite(t)

	applied, err := db.Migrate(conn)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int64
	require.NoError(t, conn.Raw("SELECT COUNT(1) FROM schema_migrations").Scan(&count).Error)
	assert.Equal(t, int64(1), count)

	for _, table := range []string{"users", "categories", "expenses", "incomes", "budgets"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestActiveBudgetIndexAllowsReuseAfterSoftDelete(t *testing.T) {
	conn := dbtest.NewSQLite(t)

	insert := "INSERT INTO budgets (id, user_id, category_id, amount, period, created_at, updated_at, deleted_at) VALUES (?, 'u1', 'c1', 100, 'monthly', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, ?)"
	require.NoError(t, conn.Exec(insert, "b1", "2024-01-01 00:00:00+00:00").Error)
	require.NoError(t, conn.Exec(insert, "b2", nil).Error)
	require.Error(t, conn.Exec(insert, "b3", nil).Error)
}
