package item

import (
	"context"

	"catalog/internal/core/tx"
	"catalog/internal/core/validation"
	"catalog/internal/domain"
)

const entityName = "catalog item"

// Service provides write operations on catalog items.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new item service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Add validates and stores a new item. item.ID is ignored.
func (s *Service) Add(ctx context.Context, item *Item) (int, error) {
	item.Normalize()
	v := item.Validate()
	if err := v.Err(); err != nil {
		return 0, err
	}

	var id int
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.repo.Add(ctx, item)
		return err
	})
	if err != nil {
		return 0, domain.Translate(err, entityName, item.Name)
	}
	item.ID = id
	return id, nil
}

// Update replaces the item identified by item.ID.
func (s *Service) Update(ctx context.Context, item *Item) (int, error) {
	item.Normalize()
	var v validation.Result
	v.ID("id", item.ID)
	fields := item.Validate()
	for _, fe := range fields.Errors() {
		v.Add(fe.Field, fe.Message)
	}
	if err := v.Err(); err != nil {
		return 0, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := s.repo.Update(ctx, item)
		return err
	})
	if err != nil {
		return 0, domain.Translate(err, entityName, item.ID)
	}
	return item.ID, nil
}

// Delete removes the item.
func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	var v validation.Result
	v.ID("id", id)
	if err := v.Err(); err != nil {
		return 0, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return 0, domain.Translate(err, entityName, id)
	}
	return id, nil
}
