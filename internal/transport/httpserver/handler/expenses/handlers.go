package expenses

import (
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Expenses *expensesdomain.Service
	log      logger.Logger
}

func New(expenses *expensesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses: expenses,
		log:      log,
	}
}
