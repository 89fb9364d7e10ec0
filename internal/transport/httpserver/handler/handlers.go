package handler

import (
	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	dashboarddomain "finance-tracker-go/internal/domain/dashboard"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	incomesdomain "finance-tracker-go/internal/domain/incomes"
	userdomain "finance-tracker-go/internal/domain/user"
	budgetshandler "finance-tracker-go/internal/transport/httpserver/handler/budgets"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
	dashboardhandler "finance-tracker-go/internal/transport/httpserver/handler/dashboard"
	expenseshandler "finance-tracker-go/internal/transport/httpserver/handler/expenses"
	incomeshandler "finance-tracker-go/internal/transport/httpserver/handler/incomes"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Common    *commonhandler.Handlers
	Expenses  *expenseshandler.Handlers
	Incomes   *incomeshandler.Handlers
	Budgets   *budgetshandler.Handlers
	Dashboard *dashboardhandler.Handlers
}

type Services struct {
	Users     *userdomain.Service
	Expenses  *expensesdomain.Service
	Incomes   *incomesdomain.Service
	Budgets   *budgetsdomain.Service
	Dashboard *dashboarddomain.Service
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Common:    commonhandler.New(services.Users, log),
		Expenses:  expenseshandler.New(services.Expenses, log),
		Incomes:   incomeshandler.New(services.Incomes, log),
		Budgets:   budgetshandler.New(services.Budgets, services.Expenses, log),
		Dashboard: dashboardhandler.New(services.Dashboard, log),
	}
}
