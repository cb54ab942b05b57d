package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/beautysalon/salon-api/internal/handler"
	"github.com/beautysalon/salon-api/internal/middleware"
	"github.com/beautysalon/salon-api/internal/model"
	customersvc "github.com/beautysalon/salon-api/internal/service/customer"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

type Handler struct {
	customers *customersvc.Service
}

func NewHandler(customers *customersvc.Service) *Handler {
	return &Handler{customers: customers}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.Get)
	r.PUT("/profile", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	profile, err := h.customers.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, profile)
}

func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	profile, err := h.customers.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, profile)
}
