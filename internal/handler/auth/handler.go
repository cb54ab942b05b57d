package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/beautysalon/salon-api/internal/handler"
	"github.com/beautysalon/salon-api/internal/middleware"
	"github.com/beautysalon/salon-api/internal/model"
	authsvc "github.com/beautysalon/salon-api/internal/service/auth"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

type Handler struct {
	auth *authsvc.Service
}

func NewHandler(auth *authsvc.Service) *Handler {
	return &Handler{auth: auth}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/auth/change-password", h.ChangePassword)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, resp)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "password updated"})
}
