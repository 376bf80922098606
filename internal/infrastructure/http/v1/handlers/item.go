package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog/internal/domain/catalog/item"
	"catalog/internal/infrastructure/http/v1/dto"
)

// ItemService manages catalog items.
type ItemService interface {
	Add(ctx context.Context, it *item.Item) (int, error)
	Update(ctx context.Context, it *item.Item) (int, error)
	Delete(ctx context.Context, id int) (int, error)
}

// ItemHandler serves writes on /catalog/items.
type ItemHandler struct {
	*BaseHandler
	service ItemService
	mapper  *dto.Mapper
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service ItemService, mapper *dto.Mapper) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service, mapper: mapper}
}

// Create handles POST /catalog/items. A client supplied id is ignored.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.ID = 0

	id, err := h.service.Add(c.Request.Context(), h.mapper.RequestToItem(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, id)
}

// Update handles PUT /catalog/items.
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Update(c.Request.Context(), h.mapper.RequestToItem(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /catalog/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
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
