// Package catalog provides the read side of the catalog: paged item
// listings, lookups by id and name, and the brand and type dictionaries.
package catalog

import (
	"context"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
)

// Repository defines catalog reads. Items are returned with CatalogBrand and
// CatalogType populated.
type Repository interface {
	// GetByPage returns the filtered item count and one page of items ordered by id.
	GetByPage(ctx context.Context, filter domain.PageFilter) (domain.Page[item.Item], error)

	// GetByID fails with domain.ErrNotFound when no item has id.
	GetByID(ctx context.Context, id int) (*item.Item, error)

	// GetByName matches name as a case-insensitive substring.
	GetByName(ctx context.Context, name string) ([]item.Item, error)

	GetProducts(ctx context.Context) ([]item.Item, error)
	GetBrands(ctx context.Context) ([]brand.Brand, error)
	GetTypes(ctx context.Context) ([]itemtype.Type, error)
}
