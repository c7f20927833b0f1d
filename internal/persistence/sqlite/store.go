// Package sqlite provides a SQLite-backed activity store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence/sqlbuild"
)

//go:embed schema.sql
var schemaSQL string

// Store persists activities in a SQLite database.
// AUTOINCREMENT keeps deleted ids from being handed out again.
type Store struct {
	db      *sql.DB
	builder sqlbuild.Builder
}

// Open creates or opens the database at path and applies pragmas.
// Call Migrate before first use on a fresh database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connect to sqlite database")
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, builder: sqlbuild.New(squirrel.Question)}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Wrapf(err, "apply %q", pragma)
		}
	}
	return nil
}

// Migrate creates the activities table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "apply sqlite schema")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FindByID implements domain.ActivityRepository.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	query, args, err := s.builder.SelectByID(id)
	if err != nil {
		return nil, err
	}

	var activity domain.Activity
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &activity.Title, &activity.Subtitle, &activity.Pending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select activity %d", id)
	}
	return &activity, nil
}

// Create implements domain.ActivityRepository.
func (s *Store) Create(ctx context.Context, fields domain.NewActivity) (*domain.Activity, error) {
	query, args, err := s.builder.Insert(fields, "")
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "insert activity")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "read inserted activity id")
	}
	return &domain.Activity{
		ID:       id,
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Pending:  fields.Pending,
	}, nil
}

// Update implements domain.ActivityRepository.
func (s *Store) Update(ctx context.Context, id int64, patch domain.ActivityPatch) error {
	query, args, err := s.builder.Update(id, patch)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "update activity %d", id)
	}
	return nil
}

// Remove implements domain.ActivityRepository.
func (s *Store) Remove(ctx context.Context, activity domain.Activity) error {
	query, args, err := s.builder.Delete(activity.ID)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete activity %d", activity.ID)
	}
	return nil
}
