package itemtype

import (
	"context"
	"strings"

	"catalog/internal/core/tx"
	"catalog/internal/domain"
)

const entityName = "catalog type"

// Service provides write operations on catalog item types.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new item type service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Add stores a new type and returns its id.
func (s *Service) Add(ctx context.Context, name string) (int, error) {
	v := ValidateName(name)
	if err := v.Err(); err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)

	var id int
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.repo.Add(ctx, name)
		return err
	})
	if err != nil {
		return 0, domain.Translate(err, entityName, name)
	}
	return id, nil
}

// GetByID returns the type or a not-found AppError.
func (s *Service) GetByID(ctx context.Context, id int) (*Type, error) {
	v := ValidateID(id)
	if err := v.Err(); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Translate(err, entityName, id)
	}
	return t, nil
}

// Update renames the type with the given id.
func (s *Service) Update(ctx context.Context, id int, name string) (int, error) {
	v := ValidateID(id)
	nameCheck := ValidateName(name)
	for _, fe := range nameCheck.Errors() {
		v.Add(fe.Field, fe.Message)
	}
	if err := v.Err(); err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := s.repo.Update(ctx, id, name)
		return err
	})
	if err != nil {
		return 0, domain.Translate(err, entityName, id)
	}
	return id, nil
}

// Delete removes the type unless items still reference it.
func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	v := ValidateID(id)
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
