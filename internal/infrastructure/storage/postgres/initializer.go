package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"catalog/pkg/logger"
)

type seedItem struct {
	name    string
	brand   string
	typ     string
	price   string
	picture string
}

var (
	seedBrands = []string{"Azure", ".NET", "Visual Studio", "SQL Server", "Other"}
	seedTypes  = []string{"Mug", "T-Shirt", "Sheet", "USB Memory Stick"}
	seedItems  = []seedItem{
		{".NET Bot Black Hoodie", ".NET", "T-Shirt", "19.5", "1.png"},
		{".NET Black & White Mug", ".NET", "Mug", "8.50", "2.png"},
		{"Prism White T-Shirt", "Other", "T-Shirt", "12", "3.png"},
		{".NET Foundation T-shirt", ".NET", "T-Shirt", "12", "4.png"},
		{"Roslyn Red Sheet", "Other", "Sheet", "8.5", "5.png"},
		{".NET Blue Hoodie", ".NET", "T-Shirt", "12", "6.png"},
		{"Roslyn Red T-Shirt", "Other", "T-Shirt", "12", "7.png"},
		{"Kudu Purple Hoodie", "Other", "T-Shirt", "8.5", "8.png"},
		{"Cup<T> White Mug", "Other", "Mug", "12", "9.png"},
		{".NET Foundation Sheet", ".NET", "Sheet", "12", "10.png"},
		{"Cup<T> Sheet", ".NET", "Sheet", "8.5", "11.png"},
		{"Prism White TShirt", "Other", "T-Shirt", "12", "12.png"},
	}
)

// Initializer creates the catalog tables and fills empty tables with the
// demo catalog.
type Initializer struct {
	txm *TxManager
}

// NewInitializer creates a new database initializer.
func NewInitializer(txm *TxManager) *Initializer {
	return &Initializer{txm: txm}
}

// Initialize applies pending migrations, then seeds empty tables in one
// transaction.
func (i *Initializer) Initialize(ctx context.Context) error {
	if err := Migrate(ctx, i.txm); err != nil {
		return err
	}
	return i.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return i.seed(ctx, i.txm.GetQuerier(ctx))
	})
}

func (i *Initializer) seed(ctx context.Context, q Querier) error {
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	brandIDs, err := seedDictionary(ctx, q, builder, "catalog_brand", "brand", seedBrands)
	if err != nil {
		return err
	}
	typeIDs, err := seedDictionary(ctx, q, builder, "catalog_type", "type", seedTypes)
	if err != nil {
		return err
	}

	empty, err := tableEmpty(ctx, q, "catalog_item")
	if err != nil || !empty {
		return err
	}

	columns := []string{
		"name", "description", "price", "picture_file_name",
		"catalog_type_id", "catalog_brand_id",
		"available_stock", "restock_threshold", "max_stock_threshold", "on_reorder",
	}
	rows := make([][]any, 0, len(seedItems))
	for _, it := range seedItems {
		brandID, okBrand := brandIDs[it.brand]
		typeID, okType := typeIDs[it.typ]
		if !okBrand || !okType {
			continue
		}
		rows = append(rows, []any{
			it.name, it.name, Numeric(decimal.RequireFromString(it.price)), it.picture,
			typeID, brandID,
			100, 10, 200, false,
		})
	}

	added, err := NewBatchInserter(i.txm).CopyFromSlice(ctx, "catalog_item", columns, rows)
	if err != nil {
		return fmt.Errorf("seed catalog_item: %w", err)
	}
	if added == 0 {
		return nil
	}
	logger.Info(ctx, "seeded catalog items", "count", added)
	return nil
}

// seedDictionary inserts names into an empty table and returns name → id
// for whatever the table holds afterwards.
func seedDictionary(ctx context.Context, q Querier, builder squirrel.StatementBuilderType, table, column string, names []string) (map[string]int, error) {
	empty, err := tableEmpty(ctx, q, table)
	if err != nil {
		return nil, err
	}
	if empty {
		insert := builder.Insert(table).Columns(column)
		for _, name := range names {
			insert = insert.Values(name)
		}
		sql, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build seed %s: %w", table, err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return nil, fmt.Errorf("seed %s: %w", table, err)
		}
		logger.Info(ctx, "seeded dictionary", "table", table, "count", len(names))
	}

	sql, args, err := builder.Select("id", column).From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	ids := make(map[string]int)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

func tableEmpty(ctx context.Context, q Querier, table string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return !exists, nil
}
