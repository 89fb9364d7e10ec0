package incomes

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"finance-tracker-go/internal/domain/calendar"
	"finance-tracker-go/internal/domain/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxSourceLength      = 255
	maxDescriptionLength = 1000
)

var minAmount = decimal.New(1, -2)

type DatePolicy interface {
	AllowFutureDates(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo  Repository
	dates DatePolicy
	now   func() time.Time
}

func NewService(repo Repository, dates DatePolicy, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:  repo,
		dates: dates,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

func (s *Service) ListIncomes(ctx context.Context, userID string, filter ListFilter) ([]Income, int64, error) {
	items, total, err := s.repo.ListIncomes(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []Income{}
	}
	return items, total, nil
}

func (s *Service) GetIncome(ctx context.Context, userID, incomeID string) (*Income, error) {
	return s.repo.GetIncomeByID(ctx, userID, incomeID)
}

func (s *Service) CreateIncome(ctx context.Context, input IncomeInput) (*Income, error) {
	source, description, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	income := Income{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Date:        calendar.DateOf(input.Date),
		Amount:      input.Amount.Round(2),
		Source:      source,
		Description: description,
	}

	if err := s.repo.CreateIncome(ctx, &income); err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *Service) UpdateIncome(ctx context.Context, incomeID string, input IncomeInput) (*Income, error) {
	income, err := s.repo.GetIncomeByID(ctx, input.UserID, incomeID)
	if err != nil {
		return nil, err
	}

	source, description, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	income.Date = calendar.DateOf(input.Date)
	income.Amount = input.Amount.Round(2)
	income.Source = source
	income.Description = description

	if err := s.repo.UpdateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *Service) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	deleted, err := s.repo.DeleteIncome(ctx, userID, incomeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrIncomeNotFound
	}
	return nil
}

func (s *Service) PurgeIncome(ctx context.Context, userID, incomeID string) error {
	purged, err := s.repo.PurgeIncome(ctx, userID, incomeID)
	if err != nil {
		return err
	}
	if !purged {
		return ErrIncomeNotFound
	}
	return nil
}

func (s *Service) validate(ctx context.Context, input IncomeInput) (*string, *string, error) {
	verr := &validation.Error{}

	if input.Date.IsZero() {
		verr.Add("date", "The date field is required.")
	} else {
		allowFuture, err := s.dates.AllowFutureDates(ctx, input.UserID)
		if err != nil {
			return nil, nil, err
		}
		if !allowFuture && calendar.DateOf(input.Date).After(calendar.DateOf(s.now())) {
			verr.Add("date", "Date cannot be in the future.")
		}
	}

	if input.Amount.LessThan(minAmount) {
		verr.Add("amount", "Amount must be greater than zero.")
	}

	source := trimmedOrNil(input.Source)
	if source != nil && utf8.RuneCountInString(*source) > maxSourceLength {
		verr.Add("source", fmt.Sprintf("The source may not be greater than %d characters.", maxSourceLength))
	}

	description := trimmedOrNil(input.Description)
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		verr.Add("description", fmt.Sprintf("The description may not be greater than %d characters.", maxDescriptionLength))
	}

	return source, description, verr.OrNil()
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}
	return &text
}
