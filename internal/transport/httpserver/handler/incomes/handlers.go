package incomes

import (
	incomesdomain "finance-tracker-go/internal/domain/incomes"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Incomes *incomesdomain.Service
	log     logger.Logger
}

func New(incomes *incomesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Incomes: incomes,
		log:     log,
	}
}
