package item

import (
	"context"
)

// Repository defines writes on catalog items. Reads go through the catalog
// read repository, which joins brand and type.
type Repository interface {
	// Add inserts the item and returns the generated id. A brand or type id
	// that does not exist yields domain.ErrInvalidReference.
	Add(ctx context.Context, item *Item) (int, error)

	// Update overwrites every writable column of the row with item.ID.
	Update(ctx context.Context, item *Item) (int, error)

	Delete(ctx context.Context, id int) (int, error)
}
