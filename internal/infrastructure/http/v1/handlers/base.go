// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds and validates a JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("Invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("Invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseID parses the named path parameter as an ID.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(param))
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid id").WithDetail(param, c.Param(param)))
		return id.Nil(), false
	}
	return parsed, true
}

// Error registers the error on the Gin context and aborts; the JSON
// response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 with the success envelope.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Success(data))
}

// Created sends 201 with the success envelope.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.Success(data))
}

// OKList sends 200 with the success envelope and a results count.
func (h *BaseHandler) OKList(c *gin.Context, results int, data any) {
	c.JSON(http.StatusOK, dto.SuccessList(results, data))
}
