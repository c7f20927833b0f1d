package gormstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/erikadonato/to-do-list/internal/domain"
)

// The MySQL dialect is not available in unit tests; gorm's sqlite dialect exercises the same mapping.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gorm.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, domain.NewActivity{Title: "A", Subtitle: "B", Pending: true})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	pending := false
	subtitle := ""
	require.NoError(t, store.Update(ctx, created.ID, domain.ActivityPatch{Subtitle: &subtitle, Pending: &pending}))

	stored, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Activity{ID: created.ID, Title: "A", Subtitle: "", Pending: false}, *stored)

	require.NoError(t, store.Remove(ctx, *stored))

	gone, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestStoreUpdateRejectsEmptyPatch(t *testing.T) {
	store := newTestStore(t)
	require.Error(t, store.Update(context.Background(), 1, domain.ActivityPatch{}))
}
