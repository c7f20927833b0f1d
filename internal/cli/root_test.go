package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikadonato/to-do-list/internal/config"
	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence"
	"github.com/erikadonato/to-do-list/internal/persistence/memory"
)

// run executes activityctl against store and returns stdout.
func run(t *testing.T, store persistence.Store, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCommand(func(context.Context, config.Config) (persistence.Store, error) {
		return store, nil
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "activityctl", cmd.Use)

	for _, name := range []string{"migrate", "search", "save", "update", "delete"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	driver := cmd.PersistentFlags().Lookup("driver")
	require.NotNil(t, driver)
	assert.Equal(t, "", driver.DefValue)
	require.NotNil(t, cmd.PersistentFlags().Lookup("dsn"))
}

func TestLifecycle(t *testing.T) {
	store := memory.NewStore()

	out, err := run(t, store, "save", "--title", "Run", "--subtitle", "Morning jog", "--pending")
	require.NoError(t, err)
	var saved domain.SaveResult
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, domain.SaveResult{StatusCode: 200, Message: domain.MessageCreated, ID: 1}, saved)

	out, err = run(t, store, "update", "--id", "1", "--pending=false", "--subtitle", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"message":"Activity updated successfully"}`, out)

	out, err = run(t, store, "search", "--id", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"statusCode": 200,
		"message": "Success in the search for the activity",
		"data": {"id": 1, "title": "Run", "subtitle": "", "pending": false}
	}`, out)

	out, err = run(t, store, "delete", "--id", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"message":"Activity deleted successfully"}`, out)
	assert.Equal(t, 0, store.Len())
}

func TestUpdateLeavesUnsetFlagsAlone(t *testing.T) {
	store := memory.NewStore()
	_, err := run(t, store, "save", "--title", "A", "--subtitle", "B", "--pending")
	require.NoError(t, err)

	_, err = run(t, store, "update", "--id", "1", "--title", "C")
	require.NoError(t, err)

	got, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Activity{ID: 1, Title: "C", Subtitle: "B", Pending: true}, *got)
}

func TestNotFoundExitsWithFailure(t *testing.T) {
	for _, args := range [][]string{
		{"search", "--id", "42"},
		{"update", "--id", "42", "--title", "x"},
		{"delete", "--id", "42"},
	} {
		_, err := run(t, memory.NewStore(), args...)
		require.Error(t, err, args)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Equal(t, "Activity with id 42 not found in database", err.Error())
	}
}

func TestInvalidDriverIsRejected(t *testing.T) {
	_, err := run(t, memory.NewStore(), "--driver", "oracle", "search", "--id", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOpenFailureIsCommandError(t *testing.T) {
	cmd := newRootCommand(func(context.Context, config.Config) (persistence.Store, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDSNFollowsDriver(t *testing.T) {
	opts := &RootOptions{Driver: config.DriverPostgres, DSN: "postgres://example/activities"}
	cfg := opts.config()
	assert.Equal(t, config.DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://example/activities", cfg.PostgresURL)

	opts = &RootOptions{Driver: config.DriverSQLite, DSN: "/tmp/acts.sqlite"}
	assert.Equal(t, "/tmp/acts.sqlite", opts.config().SQLitePath)
}

func TestMissingRequiredFlag(t *testing.T) {
	_, err := run(t, memory.NewStore(), "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "id" not set`)
}
