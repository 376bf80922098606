package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
	"catalog/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ catalog.Repository = (*CatalogRepo)(nil)

// itemRow is one catalog_item row joined with its brand and type names.
type itemRow struct {
	item.Item
	Brand string `db:"brand"`
	Type  string `db:"type"`
}

func (r itemRow) toItem() item.Item {
	it := r.Item
	it.CatalogBrand = &brand.Brand{ID: it.CatalogBrandID, Brand: r.Brand}
	it.CatalogType = &itemtype.Type{ID: it.CatalogTypeID, Type: r.Type}
	return it
}

func toItems(rows []itemRow) []item.Item {
	items := make([]item.Item, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items
}

var itemSelectCols = func() []string {
	cols := postgres.ExtractDBColumns[item.Item]()
	qualified := make([]string, 0, len(cols)+2)
	for _, c := range cols {
		qualified = append(qualified, "i."+c)
	}
	return append(qualified, "b.brand", "t.type")
}()

// CatalogRepo implements the catalog read repository.
type CatalogRepo struct {
	txm    *postgres.TxManager
	brands *BrandRepo
	types  *TypeRepo
}

// NewCatalogRepo creates a new catalog read repository.
func NewCatalogRepo(txm *postgres.TxManager) *CatalogRepo {
	return &CatalogRepo{
		txm:    txm,
		brands: NewBrandRepo(txm),
		types:  NewTypeRepo(txm),
	}
}

// itemSelect joins every item with its brand and type.
func itemSelect() squirrel.SelectBuilder {
	return builder().
		Select(itemSelectCols...).
		From(itemTable + " i").
		Join("catalog_brand b ON b.id = i.catalog_brand_id").
		Join("catalog_type t ON t.id = i.catalog_type_id")
}

// applyPageFilter restricts q to the brand and type sets; an empty set does
// not restrict.
func applyPageFilter(q squirrel.SelectBuilder, f domain.PageFilter) squirrel.SelectBuilder {
	if len(f.Brands) > 0 {
		q = q.Where(squirrel.Eq{"i.catalog_brand_id": f.Brands})
	}
	if len(f.Types) > 0 {
		q = q.Where(squirrel.Eq{"i.catalog_type_id": f.Types})
	}
	return q
}

// pageQueries builds the count query and the data query for one page.
// inRange is false when the page starts beyond any addressable row; the
// data query is then left unset and must not be run.
func pageQueries(f domain.PageFilter) (count, data squirrel.SelectBuilder, inRange bool) {
	count = applyPageFilter(
		builder().Select("COUNT(*)").From(itemTable+" i"),
		f,
	)
	offset, inRange := f.Offset()
	if !inRange {
		return count, data, false
	}
	data = applyPageFilter(itemSelect(), f).
		OrderBy("i.id ASC").
		Limit(uint64(f.PageSize)).
		Offset(uint64(offset))
	return count, data, true
}

// GetByPage returns the filtered count and the requested page. Both queries
// run in one read-only transaction so they see the same snapshot.
func (r *CatalogRepo) GetByPage(ctx context.Context, f domain.PageFilter) (domain.Page[item.Item], error) {
	page := domain.Page[item.Item]{PageIndex: f.PageIndex, PageSize: f.PageSize, Data: []item.Item{}}

	countQ, dataQ, inRange := pageQueries(f)
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return page, fmt.Errorf("build count query: %w", err)
	}
	var dataSQL string
	var dataArgs []any
	if inRange {
		dataSQL, dataArgs, err = dataQ.ToSql()
		if err != nil {
			return page, fmt.Errorf("build query: %w", err)
		}
	}

	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		querier := r.txm.GetQuerier(ctx)
		if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&page.Count); err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if page.Count == 0 || !inRange {
			return nil
		}

		var rows []itemRow
		if err := pgxscan.Select(ctx, querier, &rows, dataSQL, dataArgs...); err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		page.Data = toItems(rows)
		return nil
	})
	if err != nil {
		return domain.Page[item.Item]{}, err
	}
	return page, nil
}

// GetByID returns the item with its brand and type.
func (r *CatalogRepo) GetByID(ctx context.Context, id int) (*item.Item, error) {
	sql, args, err := itemSelect().
		Where(squirrel.Eq{"i.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s %d: %w", itemTable, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	it := row.toItem()
	return &it, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nameQuery matches name anywhere in the item name, ignoring case. LIKE
// wildcards in name match literally.
func nameQuery(name string) squirrel.SelectBuilder {
	return itemSelect().
		Where(squirrel.ILike{"i.name": "%" + likeEscaper.Replace(name) + "%"}).
		OrderBy("i.id ASC")
}

// GetByName returns items whose name contains name.
func (r *CatalogRepo) GetByName(ctx context.Context, name string) ([]item.Item, error) {
	return r.selectItems(ctx, nameQuery(name))
}

// GetProducts returns every item ordered by id.
func (r *CatalogRepo) GetProducts(ctx context.Context) ([]item.Item, error) {
	return r.selectItems(ctx, itemSelect().OrderBy("i.id ASC"))
}

func (r *CatalogRepo) selectItems(ctx context.Context, q squirrel.SelectBuilder) ([]item.Item, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	return toItems(rows), nil
}

// GetBrands returns every brand ordered by id.
func (r *CatalogRepo) GetBrands(ctx context.Context) ([]brand.Brand, error) {
	return r.brands.List(ctx)
}

// GetTypes returns every type ordered by id.
func (r *CatalogRepo) GetTypes(ctx context.Context) ([]itemtype.Type, error) {
	return r.types.List(ctx)
}
