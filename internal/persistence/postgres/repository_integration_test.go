//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/events"
	"github.com/erikadonato/to-do-list/internal/testsupport"
)

func TestRepositoryLifecycleRecordsOutboxEvents(t *testing.T) {
	ctx := context.Background()
	pool := testsupport.StartPostgres(ctx, t)

	repo := NewRepository(pool)
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Migrate(ctx), "migrate must be idempotent")

	created, err := repo.Create(ctx, domain.NewActivity{Title: "A", Subtitle: "B", Pending: false})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	pending := true
	require.NoError(t, repo.Update(ctx, created.ID, domain.ActivityPatch{Pending: &pending}))

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Activity{ID: created.ID, Title: "A", Subtitle: "B", Pending: true}, *stored)

	require.NoError(t, repo.Remove(ctx, *stored))

	gone, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	rows, err := pool.Query(ctx, `SELECT event_type, payload FROM outbox ORDER BY event_id`)
	require.NoError(t, err)
	defer rows.Close()

	var types []string
	var updatePayload events.ActivityUpdated
	for rows.Next() {
		var eventType string
		var payload []byte
		require.NoError(t, rows.Scan(&eventType, &payload))
		types = append(types, eventType)
		if eventType == events.TypeActivityUpdated {
			require.NoError(t, json.Unmarshal(payload, &updatePayload))
		}
	}
	require.NoError(t, rows.Err())

	require.Equal(t, []string{events.TypeActivityCreated, events.TypeActivityUpdated, events.TypeActivityDeleted}, types)
	require.Nil(t, updatePayload.Title)
	require.NotNil(t, updatePayload.Pending)
	require.True(t, *updatePayload.Pending)
}

func TestRepositoryNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	pool := testsupport.StartPostgres(ctx, t)

	repo := NewRepository(pool)
	require.NoError(t, repo.Migrate(ctx))

	first, err := repo.Create(ctx, domain.NewActivity{Title: "A", Subtitle: "B"})
	require.NoError(t, err)
	require.NoError(t, repo.Remove(ctx, *first))

	second, err := repo.Create(ctx, domain.NewActivity{Title: "C", Subtitle: "D"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
}
