package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"finance-tracker-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithSkipAuth(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTH_SKIP", "true")

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.CategoriesTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadRequiresSecretWithoutSkipAuth(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTH_SKIP", "false")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load(logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load(logger.Discard())
	require.Error(t, err)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	contents := "AUTH_SKIP=true\nHTTP_PORT=9090\nCATEGORIES_CACHE_TTL=5s\n# comment\nAPP_TIMEZONE=\"Asia/Dhaka\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600))
	chdir(t, dir)

	t.Setenv("HTTP_PORT", "7070")
	// Registered with t.Setenv so the variables set by the loader are restored.
	t.Setenv("AUTH_SKIP", "")
	os.Unsetenv("AUTH_SKIP")
	t.Setenv("CATEGORIES_CACHE_TTL", "")
	os.Unsetenv("CATEGORIES_CACHE_TTL")
	t.Setenv("APP_TIMEZONE", "")
	os.Unsetenv("APP_TIMEZONE")

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.True(t, cfg.Auth.SkipAuth)
	assert.Equal(t, 5*time.Second, cfg.Cache.CategoriesTTL)
	assert.Equal(t, "Asia/Dhaka", cfg.Location().String())
}

func TestGetEnvListTrimsEmptyItems(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}

func TestGetDSNForSQLite(t *testing.T) {
	cfg := DBConfig{Driver: DriverSQLite, SQLitePath: ":memory:"}
	assert.Equal(t, ":memory:", cfg.GetDSN())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
