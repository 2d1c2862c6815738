package customer

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func collect(t *testing.T, seq iter.Seq[Customer], err error) []Customer {
	t.Helper()
	require.NoError(t, err)
	var out []Customer
	for c := range seq {
		out = append(out, c)
	}
	return out
}

func TestServiceCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	created, err := svc.Create(ctx, NewCustomer{Name: "Tom Mayer", Birthdate: "2005-05-12"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, Active, created.State)

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestServiceCreateInvalidDoesNotStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)

	inputs := []NewCustomer{
		{Birthdate: "2005-05-12"},
		{Name: "Tom Mayer"},
		{Name: "Tom Mayer", Birthdate: "gelbekatze"},
		{Name: "Tom Mayer", Birthdate: "2005-05-12", State: strPtr("gelbekatze")},
		{ID: ClientID{Present: true, Value: uuid.NewString()}, Name: "Tom Mayer", Birthdate: "2005-05-12"},
	}
	for _, in := range inputs {
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalid)
	}

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestServiceFindAllByState(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	byState := make(map[State]uuid.UUID)
	for _, s := range States() {
		c, err := svc.Create(ctx, NewCustomer{Name: "Tom Mayer", Birthdate: "2005-05-12", State: strPtr(s.String())})
		require.NoError(t, err)
		byState[s] = c.ID
	}

	seq, err := svc.FindAll(ctx)
	all := collect(t, seq, err)
	assert.Len(t, all, 3)

	for _, s := range States() {
		seq, err := svc.FindAllByState(ctx, s.String())
		got := collect(t, seq, err)
		require.Len(t, got, 1, s.String())
		assert.Equal(t, byState[s], got[0].ID)
		assert.Equal(t, s, got[0].State)
	}
}

func TestServiceFindAllByInvalidState(t *testing.T) {
	svc := NewService(NewMemoryStore())
	for _, bad := range []string{"", "gelbekatze", "ACTIVE"} {
		_, err := svc.FindAllByState(context.Background(), bad)
		assert.ErrorIs(t, err, ErrInvalidState)
	}
}

func TestServiceFindByIDNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	c, err := svc.Create(ctx, NewCustomer{Name: "Tom Mayer", Birthdate: "2005-05-12"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	seq, err := svc.FindAll(ctx)
	assert.Empty(t, collect(t, seq, err))
}

type failingStore struct {
	Store
	err error
}

func (f failingStore) Insert(context.Context, Customer) (uuid.UUID, error) {
	return uuid.Nil, f.err
}

func TestServiceCreatePropagatesStoreErrors(t *testing.T) {
	svc := NewService(failingStore{Store: NewMemoryStore(), err: ErrDuplicateID})
	_, err := svc.Create(context.Background(), NewCustomer{Name: "Tom Mayer", Birthdate: "2005-05-12"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.False(t, errors.Is(err, ErrInvalid))
}
