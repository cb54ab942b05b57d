package booking

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/handler"
	"github.com/beautysalon/salon-api/internal/middleware"
	"github.com/beautysalon/salon-api/internal/model"
	bookingsvc "github.com/beautysalon/salon-api/internal/service/booking"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

type Handler struct {
	bookings *bookingsvc.Service
}

func NewHandler(bookings *bookingsvc.Service) *Handler {
	return &Handler{bookings: bookings}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/bookings/slots", h.AvailableSlots)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.Create)
	r.GET("/bookings", h.ListMine)
	r.GET("/bookings/:id", h.GetMine)
	r.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.List)
	r.GET("/bookings/stats", h.Stats)
	r.GET("/bookings/:id", h.Get)
	r.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		handler.Error(c, apperr.NewValidation("date query parameter is required"))
		return
	}

	var stylistID *uuid.UUID
	if raw := c.Query("stylist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handler.Error(c, apperr.NewValidation("invalid stylist id"))
			return
		}
		stylistID = &id
	}

	slots, err := h.bookings.AvailableSlots(c.Request.Context(), date, stylistID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"date": date, "available_slots": slots})
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	detail, err := h.bookings.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, detail)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	details, page, err := h.bookings.ListForCustomer(c.Request.Context(), userID, filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OKPage(c, details, page)
}

func (h *Handler) GetMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid booking id"))
		return
	}

	detail, err := h.bookings.GetForCustomer(c.Request.Context(), userID, bookingID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, detail)
}

func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		handler.Error(c, apperr.NewUnauthorized("authentication required"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid booking id"))
		return
	}

	// The cancellation body is optional.
	var req model.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		handler.BindError(c, err)
		return
	}

	booking, err := h.bookings.Cancel(c.Request.Context(), userID, bookingID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, booking)
}

func (h *Handler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	details, page, err := h.bookings.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OKPage(c, details, page)
}

func (h *Handler) Get(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid booking id"))
		return
	}

	detail, err := h.bookings.Get(c.Request.Context(), bookingID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, detail)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperr.NewValidation("invalid booking id"))
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), bookingID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, booking)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.bookings.Stats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, stats)
}

func parseFilters(c *gin.Context) (*model.BookingFilters, error) {
	filters := &model.BookingFilters{
		Search: c.Query("search"),
	}
	if err := c.ShouldBindQuery(&filters.Pagination); err != nil {
		return nil, apperr.NewValidation("invalid pagination parameters")
	}

	if raw := c.Query("status"); raw != "" {
		filters.Status = model.BookingStatus(raw)
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperr.NewValidation("invalid date filter")
		}
		filters.Date = &date
	}
	if raw := c.Query("stylist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.NewValidation("invalid stylist id")
		}
		filters.StylistID = &id
	}
	return filters, nil
}
