package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/beautysalon/salon-api/internal/handler"
	dashboardsvc "github.com/beautysalon/salon-api/internal/service/dashboard"
)

type Handler struct {
	dashboard *dashboardsvc.Service
}

func NewHandler(dashboard *dashboardsvc.Service) *Handler {
	return &Handler{dashboard: dashboard}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	dash, err := h.dashboard.Get(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, dash)
}
