package budgets

import (
	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Budgets  *budgetsdomain.Service
	Expenses *expensesdomain.Service
	log      logger.Logger
}

func New(budgets *budgetsdomain.Service, expenses *expensesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Budgets:  budgets,
		Expenses: expenses,
		log:      log,
	}
}
