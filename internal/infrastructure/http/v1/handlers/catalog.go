package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
	"catalog/internal/infrastructure/http/v1/dto"
)

// CatalogReader is the read side of the catalog.
type CatalogReader interface {
	GetItems(ctx context.Context, filter domain.PageFilter) (domain.Page[item.Item], error)
	GetByID(ctx context.Context, id int) (*item.Item, error)
	GetByName(ctx context.Context, name string) ([]item.Item, error)
	GetProducts(ctx context.Context) ([]item.Item, error)
	GetBrands(ctx context.Context) ([]brand.Brand, error)
	GetTypes(ctx context.Context) ([]itemtype.Type, error)
}

// CatalogHandler serves catalog queries.
type CatalogHandler struct {
	*BaseHandler
	reader CatalogReader
	mapper *dto.Mapper
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, reader CatalogReader, mapper *dto.Mapper) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, reader: reader, mapper: mapper}
}

// Items handles GET /catalog/items?pageIndex&pageSize&brandFilter&typeFilter.
func (h *CatalogHandler) Items(c *gin.Context) {
	filter := domain.PageFilter{}
	var ok bool

	if filter.PageIndex, ok = h.QueryInt(c, "pageIndex", 0); !ok {
		return
	}
	if filter.PageSize, ok = h.QueryInt(c, "pageSize", catalog.DefaultPageSize); !ok {
		return
	}
	if filter.Brands, ok = h.QueryInts(c, "brandFilter"); !ok {
		return
	}
	if filter.Types, ok = h.QueryInts(c, "typeFilter"); !ok {
		return
	}

	page, err := h.reader.GetItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.PageToDTO(page))
}

// ItemByID handles GET /catalog/items/:id.
func (h *CatalogHandler) ItemByID(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	it, err := h.reader.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.ItemToDTO(*it))
}

// ItemsWithName handles GET /catalog/items/withname/:name.
func (h *CatalogHandler) ItemsWithName(c *gin.Context) {
	items, err := h.reader.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.ItemsToDTO(items))
}

// Products handles GET /catalog/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	items, err := h.reader.GetProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.ItemsToDTO(items))
}

// Brands handles GET /catalog/catalogbrands.
func (h *CatalogHandler) Brands(c *gin.Context) {
	brands, err := h.reader.GetBrands(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.BrandsToDTO(brands))
}

// Types handles GET /catalog/catalogtypes.
func (h *CatalogHandler) Types(c *gin.Context) {
	types, err := h.reader.GetTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, h.mapper.TypesToDTO(types))
}
