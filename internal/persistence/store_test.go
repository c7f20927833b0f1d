package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erikadonato/to-do-list/internal/config"
	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence/memory"
	"github.com/erikadonato/to-do-list/internal/persistence/sqlite"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &memory.Store{}, store)

	store, err = Open(ctx, config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "a.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.IsType(t, &sqlite.Store{}, store)

	created, err := store.Create(ctx, domain.NewActivity{Title: "T", Subtitle: "S"})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "cassandra"})
	require.EqualError(t, err, `unknown store driver "cassandra"`)
}
