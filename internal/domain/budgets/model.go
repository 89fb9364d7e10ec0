package budgets

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

type Budget struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	UserID     string          `gorm:"type:uuid;index;not null"`
	CategoryID string          `gorm:"type:uuid;index;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Period     Period          `gorm:"size:16;not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

// Status is derived from the expenses recorded in the budget's current
// window. It is never stored.
type Status struct {
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed float64
	IsExceeded     bool
	PeriodStart    time.Time
	PeriodEnd      time.Time
}

type BudgetWithStatus struct {
	Budget
	Status Status
}

type CreateBudgetInput struct {
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Period     Period
}

type UpdateBudgetInput struct {
	ID         string
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Period     Period
}
