package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carrental.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"client_state", "catalog_cache"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrental.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStateRepository(db).Set(ctx, "token", []byte("a.b.c")))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	v, err := NewSQLiteStateRepository(db).Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("a.b.c"), v, "reopening must keep persisted state")
}

func TestStateRepository_SetGetUpsert(t *testing.T) {
	r := NewSQLiteStateRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("old")))
	require.NoError(t, r.Set(ctx, "token", []byte("new")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestStateRepository_GetAbsentReturnsNilNil(t *testing.T) {
	r := NewSQLiteStateRepository(openTestDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStateRepository_DeleteIsIdempotent(t *testing.T) {
	r := NewSQLiteStateRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestStateRepository_ErrorsAreWrapped(t *testing.T) {
	db := openTestDB(t)
	r := NewSQLiteStateRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get client_state[k]")
	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set client_state[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete client_state[k]")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list client_state")
}

func TestCatalogCache_ReplaceAndListKeepsOrder(t *testing.T) {
	c := NewSQLiteCatalogCache(openTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := []models.Car{{ID: "a", Brand: "Audi"}, {ID: "b", Brand: "BMW"}}
	require.NoError(t, c.Replace(ctx, first, at.Add(-time.Hour)))

	second := []models.Car{{ID: "z", Brand: "Zastava"}, {ID: "c", Brand: "Citroen", PricePerDay: 40}}
	require.NoError(t, c.Replace(ctx, second, at))

	got, fetchedAt, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.True(t, at.Equal(fetchedAt))
}

func TestCatalogCache_EmptyList(t *testing.T) {
	c := NewSQLiteCatalogCache(openTestDB(t))

	got, fetchedAt, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, fetchedAt.IsZero())
}
