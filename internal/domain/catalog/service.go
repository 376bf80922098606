package catalog

import (
	"context"
	"strings"

	"catalog/internal/core/validation"
	"catalog/internal/domain"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
)

// DefaultPageSize is used by callers that receive no page size.
const DefaultPageSize = 10

// Service serves catalog reads. Reads run outside explicit transactions.
type Service struct {
	repo Repository
}

// NewService creates a new catalog read service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetItems returns one page of items matching the brand and type filters.
// A page past the end, or a filter nothing matches, yields an empty page.
func (s *Service) GetItems(ctx context.Context, filter domain.PageFilter) (domain.Page[item.Item], error) {
	var v validation.Result
	if filter.PageSize < 1 {
		v.Add("pageSize", "Page size should be at least 1")
	}
	v.NonNegative("pageIndex", filter.PageIndex, "Page index should not be negative")
	if err := v.Err(); err != nil {
		return domain.Page[item.Item]{}, err
	}

	page, err := s.repo.GetByPage(ctx, filter)
	if err != nil {
		return domain.Page[item.Item]{}, domain.Translate(err, "catalog item", nil)
	}
	if page.Data == nil {
		page.Data = []item.Item{}
	}
	return page, nil
}

// GetByID returns a single item with its brand and type.
func (s *Service) GetByID(ctx context.Context, id int) (*item.Item, error) {
	var v validation.Result
	v.ID("id", id)
	if err := v.Err(); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Translate(err, "catalog item", id)
	}
	return it, nil
}

// GetByName returns the items whose name contains name, ignoring case.
func (s *Service) GetByName(ctx context.Context, name string) ([]item.Item, error) {
	var v validation.Result
	v.Required("name", name, "You should specify the item name")
	if err := v.Err(); err != nil {
		return nil, err
	}

	items, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, domain.Translate(err, "catalog item", name)
	}
	return nonNil(items), nil
}

// GetProducts returns every item.
func (s *Service) GetProducts(ctx context.Context) ([]item.Item, error) {
	items, err := s.repo.GetProducts(ctx)
	if err != nil {
		return nil, domain.Translate(err, "catalog item", nil)
	}
	return nonNil(items), nil
}

// GetBrands returns every brand ordered by id.
func (s *Service) GetBrands(ctx context.Context) ([]brand.Brand, error) {
	brands, err := s.repo.GetBrands(ctx)
	if err != nil {
		return nil, domain.Translate(err, "catalog brand", nil)
	}
	return nonNil(brands), nil
}

// GetTypes returns every item type ordered by id.
func (s *Service) GetTypes(ctx context.Context) ([]itemtype.Type, error) {
	types, err := s.repo.GetTypes(ctx)
	if err != nil {
		return nil, domain.Translate(err, "catalog type", nil)
	}
	return nonNil(types), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
