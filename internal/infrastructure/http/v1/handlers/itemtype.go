package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog/internal/domain/catalog/itemtype"
	"catalog/internal/infrastructure/http/v1/dto"
)

// TypeService manages catalog item types.
type TypeService interface {
	Add(ctx context.Context, name string) (int, error)
	GetByID(ctx context.Context, id int) (*itemtype.Type, error)
	Update(ctx context.Context, id int, name string) (int, error)
	Delete(ctx context.Context, id int) (int, error)
}

// TypeHandler serves /catalog/catalogtypes.
type TypeHandler struct {
	*BaseHandler
	service TypeService
	mapper  *dto.Mapper
}

// NewTypeHandler creates a new type handler.
func NewTypeHandler(base *BaseHandler, service TypeService, mapper *dto.Mapper) *TypeHandler {
	return &TypeHandler{BaseHandler: base, service: service, mapper: mapper}
}

// Get handles GET /catalog/catalogtypes/:id.
func (h *TypeHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.TypeToDTO(*t))
}

// Create handles POST /catalog/catalogtypes.
func (h *TypeHandler) Create(c *gin.Context) {
	var req dto.CreateTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Add(c.Request.Context(), req.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, id)
}

// Update handles PUT /catalog/catalogtypes.
func (h *TypeHandler) Update(c *gin.Context) {
	var req dto.UpdateTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Update(c.Request.Context(), req.ID, req.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /catalog/catalogtypes/:id.
func (h *TypeHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
