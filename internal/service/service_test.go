package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dfalcao/metacompra/internal/database"
	"github.com/dfalcao/metacompra/internal/database/repository"
)

func newTestRepo(t *testing.T) (*sql.DB, *repository.ItemRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, repository.NewItemRepo(db)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func ptr[T any](v T) *T { return &v }

// fakeCodec returns a canned blob regardless of path; nil simulates a codec
// failure.
type fakeCodec struct {
	blob []byte
}

func (f fakeCodec) Encode(string) []byte { return f.blob }
