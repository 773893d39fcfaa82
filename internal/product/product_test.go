package product

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsrikanth11/crud-testing/internal/dbx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := dbx.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "Laptop", 50000)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	got, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Name)
	assert.Equal(t, 50000.0, got.Price)
}

func TestCreateMissingFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "", 100)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = s.Create(ctx, "Item", 0)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestFindAllNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, name := range []string{"first", "second"} {
		_, err := s.Create(ctx, name, 10)
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Name)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "TV", 30000)
	require.NoError(t, err)

	got, err := s.Update(ctx, p.ID, "Smart TV", 35000)
	require.NoError(t, err)
	assert.Equal(t, "Smart TV", got.Name)
	assert.Equal(t, 35000.0, got.Price)

	_, err = s.Update(ctx, 9999, "Item", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "Monitor", 15000)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
}
