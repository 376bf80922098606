package catalog_repo

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/infrastructure/storage/postgres"
)

// newTestDB connects to CATALOG_TEST_DATABASE_URL inside a throwaway schema
// and seeds it. The test is skipped when the variable is unset.
func newTestDB(t *testing.T) *postgres.TxManager {
	t.Helper()
	dsn := os.Getenv("CATALOG_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CATALOG_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	admin, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	schema := "catalog_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(withSearchPath(dsn, schema)))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	txm := postgres.NewTxManager(pool)
	require.NoError(t, postgres.NewInitializer(txm).Initialize(ctx))
	// A second run finds no pending migrations and no empty tables.
	require.NoError(t, postgres.NewInitializer(txm).Initialize(ctx))
	return txm
}

func withSearchPath(dsn, schema string) string {
	switch {
	case strings.Contains(dsn, "://") && strings.Contains(dsn, "?"):
		return dsn + "&search_path=" + schema
	case strings.Contains(dsn, "://"):
		return dsn + "?search_path=" + schema
	default:
		return dsn + " search_path=" + schema
	}
}

func TestIntegration_BrandLifecycle(t *testing.T) {
	txm := newTestDB(t)
	repo := NewBrandRepo(txm)
	ctx := context.Background()

	id, err := repo.Add(ctx, "Acme")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Brand)

	_, err = repo.Add(ctx, "Acme")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	var dup *domain.DuplicateError
	if assert.ErrorAs(t, err, &dup) {
		assert.Equal(t, "brand", dup.Field)
		assert.Equal(t, "Acme", dup.Value)
	}

	_, err = repo.Update(ctx, 999999, "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_DeleteReferencedBrandIsRejected(t *testing.T) {
	txm := newTestDB(t)
	brands := NewBrandRepo(txm)
	catalogRepo := NewCatalogRepo(txm)
	ctx := context.Background()

	products, err := catalogRepo.GetProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	referenced := products[0].CatalogBrandID

	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := brands.Delete(ctx, referenced)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInUse)

	still, err := brands.GetByID(ctx, referenced)
	require.NoError(t, err)
	assert.Equal(t, referenced, still.ID)
}

func TestIntegration_GetByPage(t *testing.T) {
	txm := newTestDB(t)
	repo := NewCatalogRepo(txm)
	ctx := context.Background()

	all, err := repo.GetByPage(ctx, domain.PageFilter{PageIndex: 0, PageSize: 100})
	require.NoError(t, err)
	require.Positive(t, all.Count)
	assert.Len(t, all.Data, int(all.Count))
	for i := 1; i < len(all.Data); i++ {
		assert.Less(t, all.Data[i-1].ID, all.Data[i].ID)
	}
	assert.NotNil(t, all.Data[0].CatalogBrand)
	assert.NotNil(t, all.Data[0].CatalogType)

	for _, size := range []int{1, 5, 10} {
		page, err := repo.GetByPage(ctx, domain.PageFilter{PageIndex: 1, PageSize: size})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.Data), size)
		assert.Equal(t, all.Count, page.Count)
	}

	past, err := repo.GetByPage(ctx, domain.PageFilter{PageIndex: 1000, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Data)

	for _, f := range []domain.PageFilter{
		{PageIndex: 1 << 62, PageSize: 4},
		{PageIndex: 3, PageSize: 1 << 62},
		{PageIndex: 1, PageSize: 1 << 62},
	} {
		huge, err := repo.GetByPage(ctx, f)
		require.NoError(t, err, "%+v", f)
		assert.Equal(t, all.Count, huge.Count)
		assert.NotNil(t, huge.Data)
		assert.Empty(t, huge.Data)
		assert.Equal(t, f.PageIndex, huge.PageIndex)
	}

	none, err := repo.GetByPage(ctx, domain.PageFilter{PageSize: 10, Brands: []int{987654}})
	require.NoError(t, err)
	assert.Zero(t, none.Count)
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)

	brand := all.Data[0].CatalogBrandID
	filtered, err := repo.GetByPage(ctx, domain.PageFilter{PageSize: 100, Brands: []int{brand}})
	require.NoError(t, err)
	for _, it := range filtered.Data {
		assert.Equal(t, brand, it.CatalogBrandID)
	}
}

func TestIntegration_ItemWrites(t *testing.T) {
	txm := newTestDB(t)
	items := NewItemRepo(txm)
	catalogRepo := NewCatalogRepo(txm)
	ctx := context.Background()

	brands, err := catalogRepo.GetBrands(ctx)
	require.NoError(t, err)
	types, err := catalogRepo.GetTypes(ctx)
	require.NoError(t, err)

	it := &item.Item{
		Name:           "100%_Cotton Tee",
		Description:    "tee",
		Price:          decimal.RequireFromString("9.99"),
		CatalogBrandID: brands[0].ID,
		CatalogTypeID:  types[0].ID,
		AvailableStock: 3,
	}
	id, err := items.Add(ctx, it)
	require.NoError(t, err)

	got, err := catalogRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, it.Price.Equal(got.Price))
	assert.Nil(t, got.PictureFileName)
	assert.Equal(t, brands[0].Brand, got.CatalogBrand.Brand)

	byName, err := catalogRepo.GetByName(ctx, "0%_c")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, id, byName[0].ID)

	wildcard, err := catalogRepo.GetByName(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, wildcard, 1)

	it.ID = id
	it.Price = decimal.RequireFromString("-1")
	_, err = items.Update(ctx, it)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	it.Price = decimal.RequireFromString("9.99")
	it.CatalogBrandID = 987654
	_, err = items.Update(ctx, it)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = items.Delete(ctx, id)
	require.NoError(t, err)
	_, err = items.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
