package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/core/apperror"
	"catalog/internal/domain"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
)

type fakeRepo struct {
	items      []item.Item
	brands     []brand.Brand
	types      []itemtype.Type
	lastFilter domain.PageFilter
	lastName   string
	err        error
}

func (r *fakeRepo) GetByPage(_ context.Context, f domain.PageFilter) (domain.Page[item.Item], error) {
	r.lastFilter = f
	if r.err != nil {
		return domain.Page[item.Item]{}, r.err
	}
	var matched []item.Item
	for _, it := range r.items {
		if len(f.Brands) > 0 && !contains(f.Brands, it.CatalogBrandID) {
			continue
		}
		if len(f.Types) > 0 && !contains(f.Types, it.CatalogTypeID) {
			continue
		}
		matched = append(matched, it)
	}
	page := domain.Page[item.Item]{PageIndex: f.PageIndex, PageSize: f.PageSize, Count: int64(len(matched))}
	offset, ok := f.Offset()
	if !ok {
		offset = len(matched)
	}
	start := min(offset, len(matched))
	end := min(start+f.PageSize, len(matched))
	page.Data = matched[start:end]
	return page, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (*item.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetByName(_ context.Context, name string) ([]item.Item, error) {
	r.lastName = name
	return nil, r.err
}

func (r *fakeRepo) GetProducts(context.Context) ([]item.Item, error) { return r.items, r.err }
func (r *fakeRepo) GetBrands(context.Context) ([]brand.Brand, error) { return r.brands, r.err }
func (r *fakeRepo) GetTypes(context.Context) ([]itemtype.Type, error) {
	return r.types, r.err
}

func contains(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func seeded() *fakeRepo {
	repo := &fakeRepo{}
	for i := 1; i <= 12; i++ {
		repo.items = append(repo.items, item.Item{
			ID:             i,
			Name:           "item",
			CatalogBrandID: 1 + i%2,
			CatalogTypeID:  1,
		})
	}
	return repo
}

func TestGetItems_FirstPageHoldsCountWhenSmall(t *testing.T) {
	svc := NewService(seeded())

	page, err := svc.GetItems(context.Background(), domain.PageFilter{PageSize: 20})

	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Count)
	assert.Len(t, page.Data, int(page.Count))
}

func TestGetItems_PageNeverExceedsSize(t *testing.T) {
	svc := NewService(seeded())

	for _, size := range []int{1, 5, 10} {
		for index := 0; index < 4; index++ {
			page, err := svc.GetItems(context.Background(), domain.PageFilter{PageIndex: index, PageSize: size})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(page.Data), size)
			assert.EqualValues(t, 12, page.Count)
		}
	}
}

func TestGetItems_UnmatchedBrandIsEmptyNotError(t *testing.T) {
	svc := NewService(seeded())

	page, err := svc.GetItems(context.Background(), domain.PageFilter{PageSize: 10, Brands: []int{42}})

	require.NoError(t, err)
	assert.Zero(t, page.Count)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestGetItems_PastTheEnd(t *testing.T) {
	svc := NewService(seeded())

	page, err := svc.GetItems(context.Background(), domain.PageFilter{PageIndex: 9, PageSize: 10})

	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Count)
	assert.Empty(t, page.Data)
}

func TestGetItems_RejectsBadPaging(t *testing.T) {
	repo := seeded()
	svc := NewService(repo)

	_, err := svc.GetItems(context.Background(), domain.PageFilter{PageIndex: -1, PageSize: 0})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	fields := appErr.Details["fields"].(map[string][]string)
	assert.Contains(t, fields, "pageSize")
	assert.Contains(t, fields, "pageIndex")
	assert.Zero(t, repo.lastFilter.PageSize)
}

func TestGetByID(t *testing.T) {
	svc := NewService(seeded())

	it, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, it.ID)

	_, err = svc.GetByID(context.Background(), 300)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetByName_TrimsAndNeverReturnsNil(t *testing.T) {
	repo := seeded()
	svc := NewService(repo)

	items, err := svc.GetByName(context.Background(), " hoodie ")

	require.NoError(t, err)
	assert.Equal(t, "hoodie", repo.lastName)
	assert.NotNil(t, items)
}

func TestDictionaries_RepoFailureIsInternal(t *testing.T) {
	repo := &fakeRepo{err: errors.New("conn closed")}
	svc := NewService(repo)

	_, err := svc.GetBrands(context.Background())
	assert.Equal(t, 500, apperror.GetHTTPStatus(err))

	_, err = svc.GetTypes(context.Background())
	assert.Equal(t, 500, apperror.GetHTTPStatus(err))
}
