package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKeyIsNil(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGet_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("one")))
	require.NoError(t, repo.Set(ctx, "token", []byte("two")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("two"), v)
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("t")))
	require.NoError(t, repo.Set(ctx, "user", []byte("u")))

	require.NoError(t, repo.Delete(ctx, "token"))
	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, repo.Clear(ctx))
	v, err = repo.Get(ctx, "user")
	require.NoError(t, err)
	require.Nil(t, v)
}
