package expenses

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	CategoryID  string          `gorm:"type:uuid;index;not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description *string         `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

type Category struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	UserID    string         `gorm:"type:uuid;index;not null"`
	Name      string         `gorm:"not null"`
	Color     *string        `gorm:"type:text"`
	IsDefault bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type CategoryWithUsage struct {
	Category
	ExpensesCount int64
}

// ExpenseWithCategory carries the expense's category when it still resolves.
// Category is nil once the category has been deleted.
type ExpenseWithCategory struct {
	Expense
	Category *Category
}

type ListFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID string
	Limit      int
	Offset     int
}

type CreateExpenseInput struct {
	UserID      string
	CategoryID  string
	Date        time.Time
	Amount      decimal.Decimal
	Description *string
}

type UpdateExpenseInput struct {
	ID          string
	UserID      string
	CategoryID  string
	Date        time.Time
	Amount      decimal.Decimal
	Description *string
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Color  *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type UpdateCategoryInput struct {
	UserID     string
	CategoryID string
	Name       string
	Color      OptionalNullableString
}
