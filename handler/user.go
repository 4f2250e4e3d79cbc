package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/questlog/quest-service/ecode"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/resp"
	"github.com/questlog/quest-service/service"
	"github.com/questlog/quest-service/structs"
	"github.com/questlog/quest-service/validation"
)

// UserHandler handles HTTP requests for user registration.
type UserHandler struct {
	svc    *service.UserService
	logger *logger.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Create handles POST /users. The password is hashed before storage
// and never echoed back.
func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req structs.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "invalid user body", "error", err)
		resp.Fail(c.Writer, validation.RequestError(err))
		return
	}

	user, err := h.svc.Register(ctx, &req)
	if err != nil {
		e := ecode.From(err)
		if e.Status < http.StatusInternalServerError {
			h.logger.Warn(ctx, "failed to register user", "email", req.Email, "error", err)
		} else {
			h.logger.Error(ctx, "failed to register user", "email", req.Email, "error", err)
		}
		resp.Fail(c.Writer, err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, user)
}
