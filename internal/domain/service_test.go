package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence/memory"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSaveThenSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(memory.NewStore())

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "T", Subtitle: "S", Pending: true})
	require.NoError(t, err)
	require.Equal(t, domain.SaveResult{StatusCode: 200, Message: "Successfully created activity", ID: saved.ID}, saved)

	found, err := service.SearchActivityByID(ctx, saved.ID)
	require.NoError(t, err)

	want := domain.SearchResult{
		StatusCode: 200,
		Message:    "Success in the search for the activity",
		Data:       domain.Activity{ID: saved.ID, Title: "T", Subtitle: "S", Pending: true},
	}
	if diff := cmp.Diff(want, found); diff != "" {
		t.Fatalf("search result mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationsOnUnknownIDReportNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{inner: memory.NewStore()}
	service := domain.NewService(repo)

	_, err := service.SearchActivityByID(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.EqualError(t, err, "Activity with id 999 not found in database")

	_, err = service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: 999, Title: strPtr("Updated"), Pending: boolPtr(false)})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.EqualError(t, err, "Activity with id 999 not found in database")

	_, err = service.DeleteActivity(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.EqualError(t, err, "Activity with id 999 not found in database")

	require.Zero(t, repo.writes)
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(memory.NewStore())

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B", Pending: false})
	require.NoError(t, err)

	res, err := service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: saved.ID, Pending: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, domain.Result{StatusCode: 200, Message: "Activity updated successfully"}, res)

	found, err := service.SearchActivityByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Activity{ID: saved.ID, Title: "A", Subtitle: "B", Pending: true}, found.Data)
}

func TestUpdateAppliesExplicitEmptyString(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(memory.NewStore())

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.NoError(t, err)

	_, err = service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: saved.ID, Subtitle: strPtr("")})
	require.NoError(t, err)

	found, err := service.SearchActivityByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "A", found.Data.Title)
	require.Equal(t, "", found.Data.Subtitle)
}

func TestUpdateWithoutFieldsSkipsWrite(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{inner: memory.NewStore()}
	service := domain.NewService(repo)

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.NoError(t, err)
	writesAfterSave := repo.writes

	res, err := service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: saved.ID})
	require.NoError(t, err)
	require.Equal(t, domain.MessageUpdated, res.Message)
	require.Equal(t, writesAfterSave, repo.writes)
}

func TestDeleteIsTerminal(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(memory.NewStore())

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.NoError(t, err)

	res, err := service.DeleteActivity(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Result{StatusCode: 200, Message: "Activity deleted successfully"}, res)

	_, err = service.DeleteActivity(ctx, saved.ID)
	require.True(t, domain.IsNotFound(err))

	_, err = service.SearchActivityByID(ctx, saved.ID)
	require.True(t, domain.IsNotFound(err))

	_, err = service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: saved.ID, Title: strPtr("again")})
	require.True(t, domain.IsNotFound(err))
}

func TestRunUpdateSearchScenario(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(memory.NewStore())

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "Run", Subtitle: "Morning jog", Pending: true})
	require.NoError(t, err)
	require.Equal(t, domain.SaveResult{StatusCode: 200, Message: "Successfully created activity", ID: 1}, saved)

	updated, err := service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: 1, Pending: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, domain.Result{StatusCode: 200, Message: "Activity updated successfully"}, updated)

	found, err := service.SearchActivityByID(ctx, 1)
	require.NoError(t, err)
	require.False(t, found.Data.Pending)
	require.Equal(t, "Run", found.Data.Title)
}

func TestStoreFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	service := domain.NewService(failingRepo{err: boom})

	_, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.ErrorIs(t, err, domain.ErrInternal)
	require.ErrorIs(t, err, boom)
	require.False(t, domain.IsNotFound(err))

	_, err = service.SearchActivityByID(ctx, 1)
	require.True(t, domain.IsInternal(err))

	_, err = service.DeleteActivity(ctx, 1)
	require.True(t, domain.IsInternal(err))
}

func TestUpdateWriteFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("write failed")
	repo := &recordingRepo{inner: memory.NewStore(), updateErr: boom}
	service := domain.NewService(repo)

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.NoError(t, err)

	_, err = service.UpdateActivity(ctx, domain.UpdateActivityInput{ID: saved.ID, Title: strPtr("C")})
	require.ErrorIs(t, err, domain.ErrInternal)
	require.ErrorIs(t, err, boom)

	var internalErr *domain.InternalError
	require.ErrorAs(t, err, &internalErr)
	require.Equal(t, domain.OpUpdate, internalErr.Op)
}

func TestObserverReceivesOutcomes(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	service := domain.NewService(memory.NewStore(), domain.WithObserver(observer))

	saved, err := service.SaveActivity(ctx, domain.SaveActivityInput{Title: "A", Subtitle: "B"})
	require.NoError(t, err)
	_, _ = service.SearchActivityByID(ctx, saved.ID)
	_, _ = service.DeleteActivity(ctx, 404)

	require.Equal(t, []string{
		"save:success",
		"search:success",
		"delete:not_found",
	}, observer.calls)
}

type recordingRepo struct {
	inner     domain.ActivityRepository
	writes    int
	updateErr error
}

func (r *recordingRepo) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *recordingRepo) Create(ctx context.Context, fields domain.NewActivity) (*domain.Activity, error) {
	r.writes++
	return r.inner.Create(ctx, fields)
}

func (r *recordingRepo) Update(ctx context.Context, id int64, patch domain.ActivityPatch) error {
	r.writes++
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.inner.Update(ctx, id, patch)
}

func (r *recordingRepo) Remove(ctx context.Context, activity domain.Activity) error {
	r.writes++
	return r.inner.Remove(ctx, activity)
}

type failingRepo struct {
	err error
}

func (f failingRepo) FindByID(context.Context, int64) (*domain.Activity, error) { return nil, f.err }

func (f failingRepo) Create(context.Context, domain.NewActivity) (*domain.Activity, error) {
	return nil, f.err
}

func (f failingRepo) Update(context.Context, int64, domain.ActivityPatch) error { return f.err }

func (f failingRepo) Remove(context.Context, domain.Activity) error { return f.err }

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveOperation(operation, outcome string, _ time.Duration) {
	o.calls = append(o.calls, operation+":"+outcome)
}
