package itemtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/core/apperror"
	"catalog/internal/domain"
)

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubRepo struct {
	rows      map[int]string
	inUse     map[int]bool
	lastAdded string
}

func (r *stubRepo) Add(_ context.Context, name string) (int, error) {
	r.lastAdded = name
	id := len(r.rows) + 1
	r.rows[id] = name
	return id, nil
}

func (r *stubRepo) GetByID(_ context.Context, id int) (*Type, error) {
	name, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &Type{ID: id, Type: name}, nil
}

func (r *stubRepo) Update(_ context.Context, id int, name string) (int, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, domain.ErrNotFound
	}
	r.rows[id] = name
	return id, nil
}

func (r *stubRepo) Delete(_ context.Context, id int) (int, error) {
	if r.inUse[id] {
		return 0, domain.ErrInUse
	}
	if _, ok := r.rows[id]; !ok {
		return 0, domain.ErrNotFound
	}
	delete(r.rows, id)
	return id, nil
}

func newService() (*Service, *stubRepo) {
	repo := &stubRepo{rows: map[int]string{}, inUse: map[int]bool{}}
	return NewService(repo, inlineTx{}), repo
}

func TestValidateID_Messages(t *testing.T) {
	tests := []struct {
		id   int
		want []string
	}{
		{id: 0, want: []string{"You should specify the ID"}},
		{id: -1, want: []string{"You should correctly specify the ID"}},
		{id: 3, want: nil},
	}
	for _, tt := range tests {
		v := ValidateID(tt.id)
		var got []string
		for _, fe := range v.Errors() {
			got = append(got, fe.Message)
		}
		assert.Equal(t, tt.want, got, "id=%d", tt.id)
	}
}

func TestService_AddTrimsName(t *testing.T) {
	svc, repo := newService()

	id, err := svc.Add(context.Background(), " Mug ")

	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "Mug", repo.lastAdded)
}

func TestService_UpdateRenames(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	id, err := svc.Add(ctx, "Mug")
	require.NoError(t, err)

	got, err := svc.Update(ctx, id, "Cup")

	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "Cup", repo.rows[id])
}

func TestService_UpdateRequiresName(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), 1, "")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"type": {"You should specify the Type Name"}}, appErr.Details["fields"])
}

func TestService_DeleteInUse(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	id, _ := svc.Add(ctx, "T-Shirt")
	repo.inUse[id] = true

	_, err := svc.Delete(ctx, id)

	assert.True(t, apperror.IsConflict(err))
	_, err = svc.GetByID(ctx, id)
	assert.NoError(t, err)
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 9)

	assert.True(t, apperror.IsNotFound(err))
}
