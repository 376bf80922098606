// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog/internal/core/apperror"
	"catalog/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds the JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.HandleError(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// HandleError registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// PathID parses an integer path parameter. A non-numeric value does not
// address any resource and yields 404.
func (h *BaseHandler) PathID(c *gin.Context, key string) (int, bool) {
	id, err := strconv.Atoi(c.Param(key))
	if err != nil {
		h.HandleError(c, apperror.NewNotFound("resource", c.Param(key)))
		return 0, false
	}
	return id, true
}

// QueryInt parses an integer query parameter with default value.
// A malformed value is a validation error.
func (h *BaseHandler) QueryInt(c *gin.Context, key string, defaultVal int) (int, bool) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return defaultVal, true
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		h.HandleError(c, apperror.NewFieldValidation(map[string][]string{
			key: {"The value '" + val + "' is not valid."},
		}))
		return 0, false
	}
	return parsed, true
}

// QueryInts collects an integer set given as repeated parameters
// (key=1&key=2), bracketed (key[]=1) or comma-separated (key=1,2).
func (h *BaseHandler) QueryInts(c *gin.Context, key string) ([]int, bool) {
	raw := slices.Concat(c.QueryArray(key), c.QueryArray(key+"[]"))

	var out []int
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				h.HandleError(c, apperror.NewFieldValidation(map[string][]string{
					key: {"The value '" + part + "' is not valid."},
				}))
				return nil, false
			}
			out = append(out, n)
		}
	}
	return out, true
}

// OK writes 200 with indented JSON.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.IndentedJSON(http.StatusOK, data)
}

// Created writes 201 with the new id.
func (h *BaseHandler) Created(c *gin.Context, id int) {
	c.IndentedJSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// NoContent writes 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
