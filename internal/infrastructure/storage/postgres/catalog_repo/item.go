package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/infrastructure/storage/postgres"
)

const itemTable = "catalog_item"

// Compile-time check.
var _ item.Repository = (*ItemRepo)(nil)

// ItemRepo implements item.Repository on catalog_item.
type ItemRepo struct {
	txm *postgres.TxManager
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{txm: txm}
}

// itemValues returns the writable columns of it; id is never written.
func itemValues(it *item.Item) map[string]any {
	return postgres.StructToMap(it, "id")
}

func itemInsertQuery(it *item.Item) squirrel.InsertBuilder {
	return builder().
		Insert(itemTable).
		SetMap(itemValues(it)).
		Suffix("RETURNING id")
}

func itemUpdateQuery(it *item.Item) squirrel.UpdateBuilder {
	return builder().
		Update(itemTable).
		SetMap(itemValues(it)).
		Where(squirrel.Eq{"id": it.ID})
}

// Add inserts the item and returns the generated id.
func (r *ItemRepo) Add(ctx context.Context, it *item.Item) (int, error) {
	sql, args, err := itemInsertQuery(it).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.WriteError(itemTable, err)
	}
	return id, nil
}

// Update overwrites the writable columns of the row with it.ID.
func (r *ItemRepo) Update(ctx context.Context, it *item.Item) (int, error) {
	sql, args, err := itemUpdateQuery(it).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.WriteError(itemTable, err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("%s %d: %w", itemTable, it.ID, domain.ErrNotFound)
	}
	return it.ID, nil
}

// Delete removes the item with id.
func (r *ItemRepo) Delete(ctx context.Context, id int) (int, error) {
	sql, args, err := builder().
		Delete(itemTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.DeleteError(itemTable, err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("%s %d: %w", itemTable, id, domain.ErrNotFound)
	}
	return id, nil
}
