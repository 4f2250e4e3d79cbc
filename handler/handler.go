// Package handler provides the HTTP handlers of the quest service.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Quest  *QuestHandler
	User   *UserHandler
	logger *logger.Logger
}

// New creates a new handler instance with all sub-handlers initialized.
func New(svc *service.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Quest:  NewQuestHandler(svc.Quest, logger),
		User:   NewUserHandler(svc.User, logger),
		logger: logger,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	quests := r.Group("/quests")
	{
		quests.GET("", h.Quest.List)
		quests.POST("", h.Quest.Create)
		quests.GET("/:id", h.Quest.Get)
		quests.PUT("/:id", h.Quest.Update)
		quests.DELETE("/:id", h.Quest.Delete)
	}

	r.POST("/users", h.User.Create)
}

// ProviderSet is the wire provider set for the handler package.
var ProviderSet = wire.NewSet(New)
