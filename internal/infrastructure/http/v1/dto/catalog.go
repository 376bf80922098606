package dto

import (
	"github.com/shopspring/decimal"
)

// CatalogBrandDto is a brand as exposed by the API.
type CatalogBrandDto struct {
	ID    int    `json:"id"`
	Brand string `json:"brand"`
}

// CatalogTypeDto is an item type as exposed by the API.
type CatalogTypeDto struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CatalogItemDto is an item as exposed by the API. PictureURL is derived
// from PictureFileName and never read back.
type CatalogItemDto struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	PictureFileName   *string          `json:"pictureFileName"`
	PictureURL        string           `json:"pictureUrl"`
	CatalogTypeID     int              `json:"catalogTypeId"`
	CatalogType       *CatalogTypeDto  `json:"catalogType,omitempty"`
	CatalogBrandID    int              `json:"catalogBrandId"`
	CatalogBrand      *CatalogBrandDto `json:"catalogBrand,omitempty"`
	AvailableStock    int              `json:"availableStock"`
	RestockThreshold  int              `json:"restockThreshold"`
	MaxStockThreshold int              `json:"maxStockThreshold"`
	OnReorder         bool             `json:"onReorder"`
}

// --- Request DTOs ---

// CreateBrandRequest is the body of POST /catalog/catalogbrands.
type CreateBrandRequest struct {
	Brand string `json:"brand"`
}

// UpdateBrandRequest is the body of PUT /catalog/catalogbrands.
type UpdateBrandRequest struct {
	ID    int    `json:"id"`
	Brand string `json:"brand"`
}

// CreateTypeRequest is the body of POST /catalog/catalogtypes.
type CreateTypeRequest struct {
	Type string `json:"type"`
}

// UpdateTypeRequest is the body of PUT /catalog/catalogtypes.
type UpdateTypeRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// ItemRequest is the body of POST and PUT /catalog/items. ID is ignored on create.
type ItemRequest struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	PictureFileName   *string         `json:"pictureFileName"`
	CatalogTypeID     int             `json:"catalogTypeId"`
	CatalogBrandID    int             `json:"catalogBrandId"`
	AvailableStock    int             `json:"availableStock"`
	RestockThreshold  int             `json:"restockThreshold"`
	MaxStockThreshold int             `json:"maxStockThreshold"`
	OnReorder         bool            `json:"onReorder"`
}
