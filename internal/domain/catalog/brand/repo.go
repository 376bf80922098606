package brand

import (
	"context"
)

// Repository defines persistence for catalog brands.
// Missing rows are reported with domain.ErrNotFound, referenced rows on
// delete with domain.ErrInUse.
type Repository interface {
	// Add inserts a brand and returns its generated id.
	Add(ctx context.Context, name string) (int, error)

	// GetByID retrieves a brand by id.
	GetByID(ctx context.Context, id int) (*Brand, error)

	// Update renames the brand and returns its id.
	Update(ctx context.Context, id int, name string) (int, error)

	// Delete removes the brand and returns its id.
	Delete(ctx context.Context, id int) (int, error)
}
