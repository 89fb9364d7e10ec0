package incomes

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Income struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Source      *string         `gorm:"size:255"`
	Description *string         `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type IncomeInput struct {
	UserID      string
	Date        time.Time
	Amount      decimal.Decimal
	Source      *string
	Description *string
}
