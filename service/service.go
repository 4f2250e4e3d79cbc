// Package service contains the quest and user business logic.
package service

import (
	"github.com/google/wire"

	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/logging/logger"
)

// Service aggregates all business logic services.
type Service struct {
	Quest *QuestService
	User  *UserService
}

// New creates a new service instance with all sub-services initialized.
func New(d *data.Data, logger *logger.Logger) *Service {
	return &Service{
		Quest: NewQuestService(d, logger),
		User:  NewUserService(d, logger),
	}
}

// ProviderSet is the wire provider set for the service package.
var ProviderSet = wire.NewSet(New)
