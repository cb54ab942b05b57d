package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/handler"
	"github.com/beautysalon/salon-api/internal/model"
	catalogsvc "github.com/beautysalon/salon-api/internal/service/catalog"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

type Handler struct {
	catalog *catalogsvc.Service
}

func NewHandler(catalog *catalogsvc.Service) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.List)
	r.GET("/services/categories", h.ListCategories)
	r.GET("/services/popular", h.ListPopular)
	r.GET("/services/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/services", h.Create)
	r.PUT("/services/:id", h.Update)
	r.DELETE("/services/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.ServiceFilters{
		Search: c.Query("search"),
	}
	if err := c.ShouldBindQuery(&filters.Pagination); err != nil {
		handler.Error(c, apperr.NewValidation("invalid pagination parameters"))
		return
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handler.Error(c, apperr.NewValidation("invalid category id"))
			return
		}
		filters.CategoryID = &id
	}
	// The public catalog lists active services only.
	active := true
	filters.IsActive = &active

	services, page, err := h.catalog.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OKPage(c, services, page)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid service id"))
		return
	}

	service, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, service)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, categories)
}

func (h *Handler) ListPopular(c *gin.Context) {
	popular, err := h.catalog.ListPopular(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, popular)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	service, err := h.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, service)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid service id"))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	service, err := h.catalog.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, service)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid service id"))
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.NoContent(c)
}
