package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-tracker-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users        map[string]*User
	createCalls  int
	emailUpdates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

// Transaction restores the users map when fn fails.
func (r *fakeUserRepo) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[string]*User, len(r.users))
	for id, user := range r.users {
		copied := *user
		snapshot[id] = &copied
	}
	if err := fn(ctx); err != nil {
		r.users = snapshot
		return err
	}
	return nil
}

func (r *fakeUserRepo) CreateIfMissing(ctx context.Context, user *User) (bool, error) {
	r.createCalls++
	if _, ok := r.users[user.ID]; ok {
		return false, nil
	}
	copied := *user
	r.users[user.ID] = &copied
	return true, nil
}

func (r *fakeUserRepo) GetUser(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateEmail(ctx context.Context, userID, email string) error {
	r.emailUpdates++
	r.users[userID].Email = &email
	return nil
}

func (r *fakeUserRepo) UpdateSettings(ctx context.Context, userID, settings string) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Settings = settings
	return nil
}

type countingSeeder struct {
	seeded []string
	err    error
}

func (s *countingSeeder) SeedDefaultCategories(ctx context.Context, userID string) error {
	if s.err != nil {
		return s.err
	}
	s.seeded = append(s.seeded, userID)
	return nil
}

func boolPtr(value bool) *bool {
	return &value
}

func TestEnsureUserSeedsOnlyOnce(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := &countingSeeder{}
	service := NewService(repo)
	service.SetSeeder(seeder)
	ctx := context.Background()

	require.NoError(t, service.EnsureUser(ctx, "u1", "a@example.com"))
	require.NoError(t, service.EnsureUser(ctx, "u1", "a@example.com"))

	assert.Equal(t, []string{"u1"}, seeder.seeded)
	assert.Equal(t, 1, repo.createCalls)

	// A fresh process sees the existing row and does not seed again.
	again := NewService(repo)
	again.SetSeeder(seeder)
	require.NoError(t, again.EnsureUser(ctx, "u1", "new@example.com"))
	assert.Len(t, seeder.seeded, 1)
	assert.Equal(t, "new@example.com", *repo.users["u1"].Email)
}

func TestEnsureUserReturnsSeedError(t *testing.T) {
	seedErr := errors.New("seed failed")
	service := NewService(newFakeUserRepo())
	service.SetSeeder(&countingSeeder{err: seedErr})

	require.ErrorIs(t, service.EnsureUser(context.Background(), "u1", ""), seedErr)
	require.Error(t, service.EnsureUser(context.Background(), "", ""))
}

func TestEnsureUserRetriesSeedAfterFailure(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := &countingSeeder{err: errors.New("seed failed")}
	service := NewService(repo)
	service.SetSeeder(seeder)
	ctx := context.Background()

	require.Error(t, service.EnsureUser(ctx, "u1", "a@example.com"))
	_, err := repo.GetUser(ctx, "u1")
	require.ErrorIs(t, err, ErrUserNotFound)

	seeder.err = nil
	require.NoError(t, service.EnsureUser(ctx, "u1", "a@example.com"))
	assert.Equal(t, []string{"u1"}, seeder.seeded)

	stored, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", *stored.Email)
}

func TestGetSettingsForUnknownUserReturnsDefaults(t *testing.T) {
	service := NewService(newFakeUserRepo())

	settings, err := service.GetSettings(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	allow, err := service.AllowFutureDates(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, allow)
}

func TestUpdateSettingsMergesAndKeepsUnknownKeys(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = &User{ID: "u1", Settings: `{"theme":"dark","currency":"৳"}`}
	service := NewService(repo)
	ctx := context.Background()

	settings, err := service.UpdateSettings(ctx, "u1", UpdateSettingsInput{
		Currency:         "$",
		CurrencyCode:     "USD",
		AllowFutureDates: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "$", settings.Currency)
	assert.True(t, settings.AllowFutureDates)
	assert.Equal(t, "dark", settings.Extra["theme"])

	stored := DecodeSettings(repo.users["u1"].Settings)
	assert.Equal(t, "dark", stored["theme"])
	assert.Equal(t, "USD", stored["currency_code"])

	allow, err := service.AllowFutureDates(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, allow)
}

func TestUpdateSettingsValidation(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = &User{ID: "u1", Settings: "{}"}
	service := NewService(repo)

	_, err := service.UpdateSettings(context.Background(), "u1", UpdateSettingsInput{
		Currency:     strings.Repeat("$", 11),
		CurrencyCode: "",
	})
	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	assert.Contains(t, fields, "currency")
	assert.Equal(t, "The currency code field is required.", fields["currency_code"])
	assert.Contains(t, fields, "allow_future_dates")
	assert.Equal(t, "{}", repo.users["u1"].Settings)

	_, err = service.UpdateSettings(context.Background(), "u1", UpdateSettingsInput{
		Currency:         "$",
		CurrencyCode:     "USDX",
		AllowFutureDates: boolPtr(false),
	})
	fields, ok = validation.FieldsOf(err)
	require.True(t, ok)
	assert.Contains(t, fields, "currency_code")
}
