package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erikadonato/to-do-list/internal/domain"
)

func TestStoreNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.Create(ctx, domain.NewActivity{Title: "a", Subtitle: "b"})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)

	require.NoError(t, store.Remove(ctx, *first))

	second, err := store.Create(ctx, domain.NewActivity{Title: "c", Subtitle: "d"})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.ID)
	require.Equal(t, 1, store.Len())
}

func TestStoreUpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Create(ctx, domain.NewActivity{Title: "A", Subtitle: "B"})
	require.NoError(t, err)

	pending := true
	require.NoError(t, store.Update(ctx, created.ID, domain.ActivityPatch{Pending: &pending}))

	stored, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Activity{ID: created.ID, Title: "A", Subtitle: "B", Pending: true}, *stored)
}

func TestStoreFindMissingReturnsNil(t *testing.T) {
	stored, err := NewStore().FindByID(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, stored)
}
