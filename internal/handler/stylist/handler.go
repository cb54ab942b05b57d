package stylist

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/handler"
	stylistsvc "github.com/beautysalon/salon-api/internal/service/stylist"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

type Handler struct {
	stylists *stylistsvc.Service
}

func NewHandler(stylists *stylistsvc.Service) *Handler {
	return &Handler{stylists: stylists}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/stylists", h.List)
	r.GET("/stylists/:id", h.Get)
}

func (h *Handler) List(c *gin.Context) {
	stylists, err := h.stylists.ListAvailable(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, stylists)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid stylist id"))
		return
	}

	stylist, err := h.stylists.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, stylist)
}
