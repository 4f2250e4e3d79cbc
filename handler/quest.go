package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/questlog/quest-service/ctxutil"
	"github.com/questlog/quest-service/ecode"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/resp"
	"github.com/questlog/quest-service/service"
	"github.com/questlog/quest-service/structs"
	"github.com/questlog/quest-service/validation"
)

// QuestHandler handles HTTP requests for quests. Every endpoint takes
// the requesting user id as the userId query parameter.
type QuestHandler struct {
	svc    *service.QuestService
	logger *logger.Logger
}

// NewQuestHandler creates a new quest handler.
func NewQuestHandler(svc *service.QuestService, logger *logger.Logger) *QuestHandler {
	return &QuestHandler{svc: svc, logger: logger}
}

// List handles GET /quests with pagination and optional enum filters.
func (h *QuestHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := h.userID(c)
	if err != nil {
		resp.Fail(c.Writer, err)
		return
	}

	query := &structs.ListQuestsQuery{
		Page:       c.Query("page"),
		Limit:      c.Query("limit"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Difficulty: c.Query("difficulty"),
	}

	quests, meta, err := h.svc.List(ctx, userID, query)
	if err != nil {
		h.logger.Error(ctx, "failed to list quests", "userId", userID, "error", err)
		resp.Fail(c.Writer, err)
		return
	}

	resp.List(c.Writer, quests, meta)
}

// Get handles GET /quests/:id.
func (h *QuestHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, userID, err := h.questScope(c)
	if err != nil {
		resp.Fail(c.Writer, err)
		return
	}

	quest, err := h.svc.Get(ctx, userID, id)
	if err != nil {
		h.failure(c, "failed to get quest", id, err)
		return
	}

	resp.Success(c.Writer, quest)
}

// Create handles POST /quests.
func (h *QuestHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req structs.CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "invalid quest body", "error", err)
		resp.Fail(c.Writer, validation.RequestError(err))
		return
	}

	userID, err := h.userID(c)
	if err != nil {
		resp.Fail(c.Writer, err)
		return
	}

	quest, err := h.svc.Create(ctx, userID, &req)
	if err != nil {
		h.failure(c, "failed to create quest", "", err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, quest)
}

// Update handles PUT /quests/:id.
func (h *QuestHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if !validation.IsUUID(id) {
		h.logger.Warn(ctx, "invalid quest id", "id", id)
		resp.Fail(c.Writer, ecode.Validation("Invalid quest ID", "id"))
		return
	}

	var req structs.UpdateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "invalid quest body", "error", err)
		resp.Fail(c.Writer, validation.RequestError(err))
		return
	}

	userID, err := h.userID(c)
	if err != nil {
		resp.Fail(c.Writer, err)
		return
	}

	quest, err := h.svc.Update(ctx, userID, id, &req)
	if err != nil {
		h.failure(c, "failed to update quest", id, err)
		return
	}

	resp.Success(c.Writer, quest)
}

// Delete handles DELETE /quests/:id.
func (h *QuestHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, userID, err := h.questScope(c)
	if err != nil {
		resp.Fail(c.Writer, err)
		return
	}

	if err := h.svc.Delete(ctx, userID, id); err != nil {
		h.failure(c, "failed to delete quest", id, err)
		return
	}

	resp.Message(c.Writer, "Quest deleted successfully")
}

// userID extracts and validates the required userId query parameter.
// A syntactically invalid user id is a validation failure, never a
// not-found.
func (h *QuestHandler) userID(c *gin.Context) (string, error) {
	userID := c.Query("userId")
	if !validation.IsUUID(userID) {
		h.logger.Warn(c.Request.Context(), "invalid userId parameter", "userId", userID)
		return "", ecode.Validation("Invalid query parameters", "userId")
	}
	c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), userID))
	return userID, nil
}

// questScope extracts the path id and userId pair shared by the
// read and delete endpoints.
func (h *QuestHandler) questScope(c *gin.Context) (id, userID string, err error) {
	id = c.Param("id")
	if !validation.IsUUID(id) {
		h.logger.Warn(c.Request.Context(), "invalid quest id", "id", id)
		return "", "", ecode.Validation("Invalid quest ID", "id")
	}
	userID, err = h.userID(c)
	if err != nil {
		return "", "", err
	}
	return id, userID, nil
}

// failure logs a quest operation error with request context and
// renders it. Expected client errors log at warn, everything else at
// error.
func (h *QuestHandler) failure(c *gin.Context, msg, id string, err error) {
	ctx := c.Request.Context()
	e := ecode.From(err)
	if e.Status < http.StatusInternalServerError {
		h.logger.Warn(ctx, msg, "id", id, "userId", ctxutil.GetUserID(ctx), "error", err)
	} else {
		h.logger.Error(ctx, msg, "id", id, "userId", ctxutil.GetUserID(ctx), "error", err)
	}
	resp.Fail(c.Writer, err)
}
