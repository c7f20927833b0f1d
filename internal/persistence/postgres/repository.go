package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/events"
	"github.com/erikadonato/to-do-list/internal/observability"
	"github.com/erikadonato/to-do-list/internal/persistence/sqlbuild"
)

//go:embed schema.sql
var schemaSQL string

// Repository provides Postgres-backed persistence for activities and outbox events.
// Every write records its change event in the outbox inside the same transaction.
type Repository struct {
	pool    *pgxpool.Pool
	builder sqlbuild.Builder
	now     func() time.Time
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool:    pool,
		builder: sqlbuild.New(squirrel.Dollar),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the activities, outbox and audit tables when they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "apply postgres schema")
	}
	return nil
}

// FindByID retrieves an activity by ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	query, args, err := r.builder.SelectByID(id)
	if err != nil {
		return nil, err
	}

	var activity domain.Activity
	err = r.pool.QueryRow(ctx, query, args...).Scan(&activity.ID, &activity.Title, &activity.Subtitle, &activity.Pending)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select activity %d", id)
	}
	return &activity, nil
}

// Create persists the activity and records an activity.created event.
func (r *Repository) Create(ctx context.Context, fields domain.NewActivity) (*domain.Activity, error) {
	query, args, err := r.builder.Insert(fields, "RETURNING id")
	if err != nil {
		return nil, err
	}

	activity := domain.Activity{Title: fields.Title, Subtitle: fields.Subtitle, Pending: fields.Pending}
	occurredAt := r.now()

	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, args...).Scan(&activity.ID); err != nil {
			return errors.Wrap(err, "insert activity")
		}
		return r.insertOutbox(ctx, tx, activity.ID, events.TypeActivityCreated, events.ActivityCreated{
			ActivityID: activity.ID,
			Title:      activity.Title,
			Subtitle:   activity.Subtitle,
			Pending:    activity.Pending,
			OccurredAt: occurredAt,
		})
	})
	if err != nil {
		return nil, err
	}

	observability.RecordActivityPersisted(occurredAt)
	return &activity, nil
}

// Update applies the patch and records an activity.updated event carrying the changed fields.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.ActivityPatch) error {
	query, args, err := r.builder.Update(id, patch)
	if err != nil {
		return err
	}

	occurredAt := r.now()
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "update activity %d", id)
		}
		return r.insertOutbox(ctx, tx, id, events.TypeActivityUpdated, events.ActivityUpdated{
			ActivityID: id,
			Title:      patch.Title,
			Subtitle:   patch.Subtitle,
			Pending:    patch.Pending,
			OccurredAt: occurredAt,
		})
	})
	if err != nil {
		return err
	}

	observability.RecordActivityPersisted(occurredAt)
	return nil
}

// Remove deletes the activity and records an activity.deleted event.
func (r *Repository) Remove(ctx context.Context, activity domain.Activity) error {
	query, args, err := r.builder.Delete(activity.ID)
	if err != nil {
		return err
	}

	occurredAt := r.now()
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "delete activity %d", activity.ID)
		}
		return r.insertOutbox(ctx, tx, activity.ID, events.TypeActivityDeleted, events.ActivityDeleted{
			ActivityID: activity.ID,
			OccurredAt: occurredAt,
		})
	})
	if err != nil {
		return err
	}

	observability.RecordActivityPersisted(occurredAt)
	return nil
}

func (r *Repository) inTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, activityID int64, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	aggregateID := strconv.FormatInt(activityID, 10)
	dedupeKey := fmt.Sprintf("%s:%s:%s", aggregateID, eventType, uuid.NewString())

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, stmt,
		"activity",
		aggregateID,
		eventType,
		events.TopicActivityEvents,
		aggregateID,
		body,
		dedupeKey,
	)
	return errors.Wrapf(err, "record %s outbox event", eventType)
}
