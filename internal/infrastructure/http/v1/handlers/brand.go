package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog/internal/domain/catalog/brand"
	"catalog/internal/infrastructure/http/v1/dto"
)

// BrandService manages catalog brands.
type BrandService interface {
	Add(ctx context.Context, name string) (int, error)
	GetByID(ctx context.Context, id int) (*brand.Brand, error)
	Update(ctx context.Context, id int, name string) (int, error)
	Delete(ctx context.Context, id int) (int, error)
}

// BrandHandler serves /catalog/catalogbrands.
type BrandHandler struct {
	*BaseHandler
	service BrandService
	mapper  *dto.Mapper
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(base *BaseHandler, service BrandService, mapper *dto.Mapper) *BrandHandler {
	return &BrandHandler{BaseHandler: base, service: service, mapper: mapper}
}

// Get handles GET /catalog/catalogbrands/:id.
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.BrandToDTO(*b))
}

// Create handles POST /catalog/catalogbrands.
func (h *BrandHandler) Create(c *gin.Context) {
	var req dto.CreateBrandRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Add(c.Request.Context(), req.Brand)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, id)
}

// Update handles PUT /catalog/catalogbrands.
func (h *BrandHandler) Update(c *gin.Context) {
	var req dto.UpdateBrandRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Update(c.Request.Context(), req.ID, req.Brand)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.IDResponse{ID: id})
}

// Delete handles DELETE /catalog/catalogbrands/:id.
func (h *BrandHandler) Delete(c *gin.Context) {
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
