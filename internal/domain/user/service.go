package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// DefaultsSeeder prepares the starter data of a user created just now.
type DefaultsSeeder interface {
	SeedDefaultCategories(ctx context.Context, userID string) error
}

type Service struct {
	repo   Repository
	seeder DefaultsSeeder
	known  sync.Map
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetSeeder breaks the construction cycle between users and categories.
func (s *Service) SetSeeder(seeder DefaultsSeeder) {
	s.seeder = seeder
}

// EnsureUser makes sure a row exists for the authenticated subject. New users
// get the default categories in the same transaction as their row. Users
// already seen by this process are skipped.
func (s *Service) EnsureUser(ctx context.Context, userID, email string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	email = strings.TrimSpace(email)
	if known, ok := s.known.Load(userID); ok && known.(string) == email {
		return nil
	}

	record := User{ID: userID, Settings: "{}"}
	if email != "" {
		record.Email = &email
	}

	var created bool
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreateIfMissing(ctx, &record)
		if err != nil || !created || s.seeder == nil {
			return err
		}
		return s.seeder.SeedDefaultCategories(ctx, userID)
	})
	if err != nil {
		return err
	}

	if !created && email != "" {
		if err := s.repo.UpdateEmail(ctx, userID, email); err != nil {
			return err
		}
	}

	s.known.Store(userID, email)
	return nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *Service) GetSettings(ctx context.Context, userID string) (Settings, error) {
	record, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}
	return ResolveSettings(DecodeSettings(record.Settings)), nil
}

// UpdateSettings merges the validated values into the stored object and
// keeps every other stored key.
func (s *Service) UpdateSettings(ctx context.Context, userID string, input UpdateSettingsInput) (Settings, error) {
	if err := input.validate(); err != nil {
		return Settings{}, err
	}

	record, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Settings{}, err
	}

	stored := DecodeSettings(record.Settings)
	stored[SettingCurrency] = strings.TrimSpace(input.Currency)
	stored[SettingCurrencyCode] = strings.TrimSpace(input.CurrencyCode)
	stored[SettingAllowFutureDates] = *input.AllowFutureDates

	encoded, err := encodeSettings(stored)
	if err != nil {
		return Settings{}, err
	}
	if err := s.repo.UpdateSettings(ctx, userID, encoded); err != nil {
		return Settings{}, err
	}

	return ResolveSettings(stored), nil
}

func (s *Service) AllowFutureDates(ctx context.Context, userID string) (bool, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return false, err
	}
	return settings.AllowFutureDates, nil
}
