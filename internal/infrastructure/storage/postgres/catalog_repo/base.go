// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"catalog/internal/domain"
	"catalog/internal/infrastructure/storage/postgres"
)

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// dictionaryRepo provides CRUD for the (id, name) tables catalog_brand and
// catalog_type.
type dictionaryRepo[T any] struct {
	txm       *postgres.TxManager
	tableName string
	column    string
}

func newDictionaryRepo[T any](txm *postgres.TxManager, tableName, column string) *dictionaryRepo[T] {
	return &dictionaryRepo[T]{txm: txm, tableName: tableName, column: column}
}

func (r *dictionaryRepo[T]) insertQuery(name string) squirrel.InsertBuilder {
	return builder().
		Insert(r.tableName).
		Columns(r.column).
		Values(name).
		Suffix("RETURNING id")
}

func (r *dictionaryRepo[T]) selectQuery() squirrel.SelectBuilder {
	return builder().
		Select("id", r.column).
		From(r.tableName)
}

func (r *dictionaryRepo[T]) updateQuery(id int, name string) squirrel.UpdateBuilder {
	return builder().
		Update(r.tableName).
		Set(r.column, name).
		Where(squirrel.Eq{"id": id})
}

func (r *dictionaryRepo[T]) deleteQuery(id int) squirrel.DeleteBuilder {
	return builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": id})
}

// Add inserts a row and returns its generated id.
func (r *dictionaryRepo[T]) Add(ctx context.Context, name string) (int, error) {
	sql, args, err := r.insertQuery(name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.WriteError(r.tableName, err)
	}
	return id, nil
}

// GetByID retrieves a row by id.
func (r *dictionaryRepo[T]) GetByID(ctx context.Context, id int) (*T, error) {
	sql, args, err := r.selectQuery().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entity := new(T)
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s %d: %w", r.tableName, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s by id: %w", r.tableName, err)
	}
	return entity, nil
}

// List returns every row ordered by id.
func (r *dictionaryRepo[T]) List(ctx context.Context) ([]T, error) {
	sql, args, err := r.selectQuery().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return items, nil
}

// Update renames the row with id.
func (r *dictionaryRepo[T]) Update(ctx context.Context, id int, name string) (int, error) {
	sql, args, err := r.updateQuery(id, name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.WriteError(r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("%s %d: %w", r.tableName, id, domain.ErrNotFound)
	}
	return id, nil
}

// Delete removes the row with id. Rows referenced by catalog items are kept
// and reported as domain.ErrInUse.
func (r *dictionaryRepo[T]) Delete(ctx context.Context, id int) (int, error) {
	sql, args, err := r.deleteQuery(id).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.DeleteError(r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("%s %d: %w", r.tableName, id, domain.ErrNotFound)
	}
	return id, nil
}
