package common

import (
	userdomain "finance-tracker-go/internal/domain/user"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Users *userdomain.Service
	log   logger.Logger
}

func New(users *userdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users: users,
		log:   log,
	}
}
