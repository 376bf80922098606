// Package item provides the catalog item entity and its write-side service.
package item

import (
	"strings"

	"github.com/shopspring/decimal"

	"catalog/internal/core/validation"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/itemtype"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 1000
)

// Item is a row of catalog_item. Reads fill CatalogType and CatalogBrand
// from the referenced rows; writes only look at the foreign key ids.
type Item struct {
	ID                int             `db:"id"`
	Name              string          `db:"name"`
	Description       string          `db:"description"`
	Price             decimal.Decimal `db:"price"`
	PictureFileName   *string         `db:"picture_file_name"`
	CatalogTypeID     int             `db:"catalog_type_id"`
	CatalogBrandID    int             `db:"catalog_brand_id"`
	AvailableStock    int             `db:"available_stock"`
	RestockThreshold  int             `db:"restock_threshold"`
	MaxStockThreshold int             `db:"max_stock_threshold"`
	OnReorder         bool            `db:"on_reorder"`

	CatalogType  *itemtype.Type `db:"-"`
	CatalogBrand *brand.Brand   `db:"-"`
}

// Normalize trims free-text fields and drops an empty picture name.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Description = strings.TrimSpace(i.Description)
	if i.PictureFileName != nil {
		name := strings.TrimSpace(*i.PictureFileName)
		if name == "" {
			i.PictureFileName = nil
		} else {
			i.PictureFileName = &name
		}
	}
}

// Validate checks the writable fields of an item.
func (i *Item) Validate() validation.Result {
	var v validation.Result
	v.Required("name", i.Name, "You should specify the item name")
	v.MaxLength("name", i.Name, MaxNameLength, "Item name is too long")
	v.MaxLength("description", i.Description, MaxDescriptionLength, "Description is too long")
	v.NonNegativeDecimal("price", i.Price, "Price should not be negative")
	v.Positive("catalogBrandId", i.CatalogBrandID, "You should specify the brand")
	v.Positive("catalogTypeId", i.CatalogTypeID, "You should specify the type")
	v.NonNegative("availableStock", i.AvailableStock, "Available stock should not be negative")
	v.NonNegative("restockThreshold", i.RestockThreshold, "Restock threshold should not be negative")
	v.NonNegative("maxStockThreshold", i.MaxStockThreshold, "Max stock threshold should not be negative")
	return v
}
