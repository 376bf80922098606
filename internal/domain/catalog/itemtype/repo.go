package itemtype

import (
	"context"
)

// Repository defines persistence for catalog item types.
type Repository interface {
	Add(ctx context.Context, name string) (int, error)
	GetByID(ctx context.Context, id int) (*Type, error)
	Update(ctx context.Context, id int, name string) (int, error)
	// Delete fails with domain.ErrInUse while items still reference the type.
	Delete(ctx context.Context, id int) (int, error)
}
