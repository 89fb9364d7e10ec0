package dashboard

import (
	dashboarddomain "finance-tracker-go/internal/domain/dashboard"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Dashboard *dashboarddomain.Service
	log       logger.Logger
}

func New(dashboard *dashboarddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Dashboard: dashboard,
		log:       log,
	}
}
