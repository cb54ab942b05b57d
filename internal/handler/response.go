package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    interface{}     `json:"data,omitempty"`
	Page    *model.PageInfo `json:"pagination,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func OKPage(c *gin.Context, data interface{}, page model.PageInfo) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Page: &page})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error hands the error to the error middleware for rendering.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindError wraps a request binding failure as a validation error.
func BindError(c *gin.Context, err error) {
	Error(c, apperr.NewValidation(err.Error()))
}
