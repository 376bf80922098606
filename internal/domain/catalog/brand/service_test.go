package brand

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/core/apperror"
	"catalog/internal/domain"
)

type inlineTx struct{ calls int }

func (m *inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type memRepo struct {
	rows       map[int]string
	nextID     int
	referenced map[int]bool
	failWith   error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int]string{}, nextID: 1, referenced: map[int]bool{}}
}

func (r *memRepo) Add(_ context.Context, name string) (int, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	for _, existing := range r.rows {
		if existing == name {
			return 0, fmt.Errorf("insert catalog_brand: %w", domain.ErrDuplicate)
		}
	}
	id := r.nextID
	r.nextID++
	r.rows[id] = name
	return id, nil
}

func (r *memRepo) GetByID(_ context.Context, id int) (*Brand, error) {
	name, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("catalog_brand %d: %w", id, domain.ErrNotFound)
	}
	return &Brand{ID: id, Brand: name}, nil
}

func (r *memRepo) Update(_ context.Context, id int, name string) (int, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, domain.ErrNotFound
	}
	r.rows[id] = name
	return id, nil
}

func (r *memRepo) Delete(_ context.Context, id int) (int, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, domain.ErrNotFound
	}
	if r.referenced[id] {
		return 0, domain.ErrInUse
	}
	delete(r.rows, id)
	return id, nil
}

func TestService_AddThenGet(t *testing.T) {
	repo := newMemRepo()
	txm := &inlineTx{}
	svc := NewService(repo, txm)
	ctx := context.Background()

	id, err := svc.Add(ctx, "  Azure ")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, txm.calls)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &Brand{ID: 1, Brand: "Azure"}, got)
}

func TestService_AddRejectsBlankName(t *testing.T) {
	repo := newMemRepo()
	txm := &inlineTx{}
	svc := NewService(repo, txm)

	_, err := svc.Add(context.Background(), "   ")

	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, txm.calls)
	assert.Empty(t, repo.rows)
}

func TestService_AddDuplicateIsConflict(t *testing.T) {
	svc := NewService(newMemRepo(), &inlineTx{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "Azure")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "Azure")
	assert.True(t, apperror.IsConflict(err))
}

func TestService_UpdateCollectsAllProblems(t *testing.T) {
	svc := NewService(newMemRepo(), &inlineTx{})

	_, err := svc.Update(context.Background(), 0, "")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	fields := appErr.Details["fields"].(map[string][]string)
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "brand")
}

func TestService_UpdateMissingIsNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), &inlineTx{})

	_, err := svc.Update(context.Background(), 42, "Roslyn")

	assert.True(t, apperror.IsNotFound(err))
}

func TestService_DeleteReferencedIsRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &inlineTx{})
	ctx := context.Background()

	id, err := svc.Add(ctx, ".NET")
	require.NoError(t, err)
	repo.referenced[id] = true

	_, err = svc.Delete(ctx, id)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInUse, appErr.Code)
	assert.Contains(t, repo.rows, id)
}

func TestService_DeleteThenGetIsNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), &inlineTx{})
	ctx := context.Background()

	id, err := svc.Add(ctx, "Other")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted)

	_, err = svc.GetByID(ctx, id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_UnknownRepoErrorIsInternal(t *testing.T) {
	repo := newMemRepo()
	repo.failWith = errors.New("connection reset")
	svc := NewService(repo, &inlineTx{})

	_, err := svc.Add(context.Background(), "Azure")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInternal, appErr.Code)
}
